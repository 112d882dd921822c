package services

import (
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vnkhanh/sesh-server/models"
	"gorm.io/gorm"
)

// nowFunc để test thay được đồng hồ
var nowFunc = time.Now

const defaultSchedulerTZ = "America/Los_Angeles"

// Scheduler quét sesh notStarted đã qua giờ đề xuất mỗi phút,
// dọn pool của participant rồi chuyển status sang finished.
type Scheduler struct {
	db   *gorm.DB
	loc  *time.Location
	cron *cron.Cron
}

func NewScheduler(db *gorm.DB) *Scheduler {
	tz := os.Getenv("SCHEDULER_TZ")
	if tz == "" {
		tz = defaultSchedulerTZ
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("[scheduler] timezone %q không load được, dùng UTC: %v", tz, err)
		loc = time.UTC
	}

	// SkipIfStillRunning: tick trước chưa xong thì bỏ qua tick kế, không chạy chồng
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	return &Scheduler{db: db, loc: loc, cron: c}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 1m", s.Tick); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("[scheduler] started, tick mỗi phút")
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Tick: tìm sesh hôm nay đã tới giờ và finalize từng cái.
// Lỗi trên một sesh không chặn các sesh còn lại trong cùng tick.
func (s *Scheduler) Tick() {
	now := nowFunc().In(s.loc)
	dateStr := now.Format(DayFormat)

	var seshes []models.Sesh
	err := s.db.
		Where("status = ? AND proposed_day = ?", models.SeshNotStarted, dateStr).
		Find(&seshes).Error
	if err != nil {
		log.Printf("[scheduler] query sesh thất bại: %v", err)
		return
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	for i := range seshes {
		sesh := &seshes[i]
		proposed, err := MinutesOfDay(sesh.ProposedTime)
		if err != nil {
			// giờ hỏng thì bỏ qua, tick sau thử lại
			log.Printf("[scheduler] sesh %d giờ đề xuất %q không parse được: %v", sesh.ID, sesh.ProposedTime, err)
			continue
		}
		if nowMinutes < proposed {
			continue
		}
		s.finalize(sesh)
	}
}

// finalize dọn pool của từng participant trước rồi mới flip status.
// Lỗi trên một participant chỉ log, không chặn những người còn lại;
// sesh chưa flip được thì tick sau quét lại.
func (s *Scheduler) finalize(sesh *models.Sesh) {
	// chưa quyết định: chỉ rút khỏi undecided, không có history
	for _, uid := range sesh.UsersUnconfirmed {
		seshID := sesh.ID
		err := updateUserPools(s.db, uid, func(u *models.NguoiDung) {
			u.UpcomingUndecidedSeshes = removeID(u.UpcomingUndecidedSeshes, seshID)
		})
		if err != nil {
			log.Printf("[scheduler] dọn undecided thất bại user=%d sesh=%d: %v", uid, sesh.ID, err)
		}
	}

	for _, uid := range sesh.UsersDeclined {
		seshID := sesh.ID
		err := updateUserPools(s.db, uid, func(u *models.NguoiDung) {
			u.UpcomingDeclinedSeshes = removeID(u.UpcomingDeclinedSeshes, seshID)
		})
		if err != nil {
			log.Printf("[scheduler] dọn declined thất bại user=%d sesh=%d: %v", uid, sesh.ID, err)
		}
	}

	// người đã accept: rời upcoming, vào history
	for _, uid := range sesh.UsersConfirmed {
		seshID := sesh.ID
		err := updateUserPools(s.db, uid, func(u *models.NguoiDung) {
			u.UpcomingAcceptedSeshes = removeID(u.UpcomingAcceptedSeshes, seshID)
			u.SeshHistory = appendIfMissing(u.SeshHistory, seshID)
		})
		if err != nil {
			log.Printf("[scheduler] chuyển history thất bại user=%d sesh=%d: %v", uid, sesh.ID, err)
		}
	}

	sesh.Status = models.SeshFinished
	if err := s.db.Save(sesh).Error; err != nil {
		log.Printf("[scheduler] flip status thất bại sesh=%d: %v", sesh.ID, err)
	}
}
