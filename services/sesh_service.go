package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/vnkhanh/sesh-server/models"
	"gorm.io/gorm"
)

// Default được main gán sau khi kết nối DB; controller dùng instance này
var Default *SeshService

func Init(db *gorm.DB) {
	Default = NewSeshService(db)
}

// SeshService giữ state machine của sesh và việc đồng bộ pool hai phía.
// Accept/Decline đi qua bus: controller chờ handler chạy xong mới trả response.
type SeshService struct {
	db  *gorm.DB
	bus *Dispatcher
}

func NewSeshService(db *gorm.DB) *SeshService {
	s := &SeshService{db: db, bus: NewDispatcher()}
	s.bus.Subscribe(EventUserConfirmed, s.handleUserConfirmed)
	s.bus.Subscribe(EventUserDeclined, s.handleUserDeclined)
	return s
}

type CreateSeshInput struct {
	Game         string
	ProposedDay  string
	ProposedTime string
	Recipients   []string // emails
}

func (s *SeshService) GetSesh(id uint) (*models.Sesh, error) {
	var sesh models.Sesh
	if err := s.db.First(&sesh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sesh %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &sesh, nil
}

func (s *SeshService) GetSeshByShareURL(shareURL string) (*models.Sesh, error) {
	var sesh models.Sesh
	if err := s.db.Where("share_url = ?", shareURL).First(&sesh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: sesh %s", ErrNotFound, shareURL)
		}
		return nil, err
	}
	return &sesh, nil
}

// CreateSesh: validate recipients, seed pool hai phía.
// Người tạo vào thẳng usersConfirmed, recipients vào usersUnconfirmed.
func (s *SeshService) CreateSesh(owner *models.NguoiDung, in CreateSeshInput) (*models.Sesh, error) {
	day, err := ParseProposedDay(in.ProposedDay, nowFunc())
	if err != nil {
		return nil, err
	}

	recipients := s.validateRecipients(in.Recipients, owner.ID)
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: không validate được recipient nào", ErrValidationFailed)
	}

	sesh := &models.Sesh{
		Game:             in.Game,
		ProposedDay:      day,
		ProposedTime:     in.ProposedTime,
		SentFrom:         owner.ID,
		Recipients:       recipients,
		UsersConfirmed:   []uint{owner.ID},
		UsersUnconfirmed: append([]uint{}, recipients...),
		UsersDeclined:    []uint{},
		Status:           models.SeshNotStarted,
		ShareURL:         uuid.NewString(),
	}
	if err := s.db.Create(sesh).Error; err != nil {
		return nil, err
	}

	// seed pool undecided cho từng recipient; lỗi lẻ không chặn các recipient còn lại
	for _, rid := range recipients {
		seshID := sesh.ID
		err := updateUserPools(s.db, rid, func(u *models.NguoiDung) {
			u.UpcomingUndecidedSeshes = appendIfMissing(u.UpcomingUndecidedSeshes, seshID)
		})
		if err != nil {
			log.Printf("[sesh] seed undecided pool thất bại user=%d sesh=%d: %v", rid, sesh.ID, err)
		}
	}

	// người tạo được tính là đã accept ngay từ đầu
	err = updateUserPools(s.db, owner.ID, func(u *models.NguoiDung) {
		u.UpcomingAcceptedSeshes = appendIfMissing(u.UpcomingAcceptedSeshes, sesh.ID)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: accepted pool của người tạo: %v", ErrUpdateFailed, err)
	}

	return sesh, nil
}

// validateRecipients resolve từng email song song, bỏ qua email không tồn tại.
// Thứ tự kết quả không đảm bảo theo thứ tự gửi lên.
func (s *SeshService) validateRecipients(emails []string, ownerID uint) []uint {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		ids []uint
	)
	for _, email := range emails {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			var u models.NguoiDung
			// chỉ cần id, không kéo pool của user về
			if err := s.db.Select("id").Where("email = ?", email).First(&u).Error; err != nil {
				log.Printf("[sesh] bỏ qua recipient %q: %v", email, err)
				return
			}
			if u.ID == ownerID {
				// người tạo đã ở usersConfirmed, không cho tự mời mình
				return
			}
			mu.Lock()
			ids = appendIfMissing(ids, u.ID)
			mu.Unlock()
		}(email)
	}
	wg.Wait()
	return ids
}

// Accept chuyển user unconfirmed -> confirmed
func (s *SeshService) Accept(userID, seshID uint) (*models.Sesh, error) {
	return s.rsvp(userID, seshID, EventUserConfirmed)
}

// Decline chuyển user unconfirmed -> declined
func (s *SeshService) Decline(userID, seshID uint) (*models.Sesh, error) {
	return s.rsvp(userID, seshID, EventUserDeclined)
}

func (s *SeshService) rsvp(userID, seshID uint, event string) (*models.Sesh, error) {
	sesh, err := s.GetSesh(seshID)
	if err != nil {
		return nil, err
	}
	if sesh.Status != models.SeshNotStarted {
		return nil, fmt.Errorf("%w: sesh đã kết thúc", ErrNotInvited)
	}
	// không idempotent: user đã rời unconfirmed thì lần gọi sau fail
	if !containsID(sesh.UsersUnconfirmed, userID) {
		return nil, fmt.Errorf("%w: user %d không ở unconfirmed của sesh %d", ErrNotInvited, userID, seshID)
	}

	if err := s.bus.Emit(event, SeshRSVP{UserID: userID, SeshID: seshID}); err != nil {
		return nil, err
	}

	// đọc lại sau khi handler chạy xong để response thấy đúng state mới
	return s.GetSesh(seshID)
}

func (s *SeshService) handleUserConfirmed(ev SeshRSVP) error {
	return s.applyRSVP(ev, true)
}

func (s *SeshService) handleUserDeclined(ev SeshRSVP) error {
	return s.applyRSVP(ev, false)
}

// số lần đọc lại khi guard của casSeshPartition trượt
const maxPartitionRetries = 5

// applyRSVP ghi hai phía theo thứ tự cố định: sesh trước, user sau.
// Phía sesh ghi bằng một UPDATE có guard (casSeshPartition) để hai participant
// khác nhau accept song song không ghi đè transition của nhau; guard trượt thì
// đọc lại và thử tiếp. Phía sesh fail thì dừng luôn, chưa đụng tới user.
// Phía user fail sau khi sesh đã ghi thì trả ErrUpdateFailed (hai mirror có
// thể lệch tạm thời).
func (s *SeshService) applyRSVP(ev SeshRSVP, accepted bool) error {
	applied := false
	for attempt := 0; attempt < maxPartitionRetries; attempt++ {
		sesh, err := s.GetSesh(ev.SeshID)
		if err != nil {
			return err
		}
		// handler resolve lại, check membership lần nữa phòng state đã đổi
		if !containsID(sesh.UsersUnconfirmed, ev.UserID) {
			return fmt.Errorf("%w: user %d không ở unconfirmed của sesh %d", ErrNotInvited, ev.UserID, ev.SeshID)
		}
		ok, err := casSeshPartition(s.db, sesh, ev.UserID, accepted)
		if err != nil {
			return err
		}
		if ok {
			applied = true
			break
		}
	}
	if !applied {
		return fmt.Errorf("sesh %d: pool thay đổi liên tục, không ghi được transition cho user %d", ev.SeshID, ev.UserID)
	}

	err := updateUserPools(s.db, ev.UserID, func(u *models.NguoiDung) {
		u.UpcomingUndecidedSeshes = removeID(u.UpcomingUndecidedSeshes, ev.SeshID)
		if accepted {
			u.UpcomingAcceptedSeshes = appendIfMissing(u.UpcomingAcceptedSeshes, ev.SeshID)
		} else {
			u.UpcomingDeclinedSeshes = appendIfMissing(u.UpcomingDeclinedSeshes, ev.SeshID)
		}
	})
	if err != nil {
		return fmt.Errorf("%w: pool của user %d sau khi sesh %d đã ghi: %v", ErrUpdateFailed, ev.UserID, ev.SeshID, err)
	}
	return nil
}
