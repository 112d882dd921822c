package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayFormat khớp với chuỗi Date.toDateString() mà mobile gửi lên, ví dụ "Mon Aug 31 2026"
const DayFormat = "Mon Jan 02 2006"

var explicitDayLayouts = []string{
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	DayFormat,
}

// ParseProposedDay nhận "today" | "tomorrow" | ngày cụ thể và chuẩn hóa về DayFormat.
// Ngày cụ thể phải ở tương lai; chuỗi không parse được coi như hôm nay (best-effort).
func ParseProposedDay(raw string, now time.Time) (string, error) {
	day := strings.ToLower(strings.TrimSpace(raw))

	if day == "tomorrow" {
		return now.AddDate(0, 0, 1).Format(DayFormat), nil
	}
	if day == "today" {
		return now.Format(DayFormat), nil
	}

	for _, layout := range explicitDayLayouts {
		d, err := time.ParseInLocation(layout, strings.TrimSpace(raw), now.Location())
		if err != nil {
			continue
		}
		// cuối ngày được đề xuất vẫn chưa qua thì chấp nhận
		endOfDay := time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, now.Location())
		if endOfDay.Before(now) {
			return "", fmt.Errorf("%w: ngày đề xuất phải ở tương lai", ErrValidationFailed)
		}
		return d.Format(DayFormat), nil
	}

	return now.Format(DayFormat), nil
}

// MinutesOfDay đổi giờ 12h kiểu "7:30 pm" ra số phút kể từ 0h.
// So sánh bằng số thay vì so chuỗi để "9:15" không lớn hơn "15:04".
func MinutesOfDay(timeStr string) (int, error) {
	parts := strings.Fields(strings.ToLower(strings.TrimSpace(timeStr)))
	if len(parts) != 2 {
		return 0, fmt.Errorf("giờ không hợp lệ: %q", timeStr)
	}
	meridiem := parts[1]
	if meridiem != "am" && meridiem != "pm" {
		return 0, fmt.Errorf("giờ không hợp lệ: %q", timeStr)
	}

	hm := strings.SplitN(parts[0], ":", 2)
	if len(hm) != 2 {
		return 0, fmt.Errorf("giờ không hợp lệ: %q", timeStr)
	}
	hour, err := strconv.Atoi(hm[0])
	if err != nil || hour < 1 || hour > 12 {
		return 0, fmt.Errorf("giờ không hợp lệ: %q", timeStr)
	}
	minute, err := strconv.Atoi(hm[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("giờ không hợp lệ: %q", timeStr)
	}

	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	if meridiem == "pm" && hour != 12 {
		hour += 12
	}
	return hour*60 + minute, nil
}
