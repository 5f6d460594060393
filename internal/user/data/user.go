package data

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/user/biz"
	"gorm.io/gorm"
)

// UserPO represents the database model
type UserPO struct {
	ID                string    `gorm:"type:uuid;primarykey"`
	Username          string    `gorm:"size:100;not null;uniqueIndex:idx_users_username"`
	Email             string    `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Searches          int       `gorm:"not null;default:0"`
	ResumeText        string    `gorm:"type:text"`
	AdditionalDetails string    `gorm:"type:text"`
	ProfileCompleted  bool      `gorm:"not null;default:false"`
	JoinedWaitlist    bool      `gorm:"not null;default:false"`
	CreatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (UserPO) TableName() string {
	return "users"
}

// UserRepo implements biz.UserRepo
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) biz.UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *biz.User) error {
	po := &UserPO{
		ID:                uuid.NewString(),
		Username:          user.Username,
		Email:             user.Email,
		Searches:          user.Searches,
		ResumeText:        user.ResumeText,
		AdditionalDetails: user.AdditionalDetails,
		ProfileCompleted:  user.ProfileCompleted,
		JoinedWaitlist:    user.JoinedWaitlist,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return err
	}

	user.ID = po.ID
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*biz.User, error) {
	var po UserPO
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrUserNotFound)
		}
		return nil, err
	}
	return r.toUser(&po), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*biz.User, error) {
	var po UserPO
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrUserNotFound)
		}
		return nil, err
	}
	return r.toUser(&po), nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id, resumeText, additionalDetails string) error {
	result := r.db.WithContext(ctx).
		Model(&UserPO{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"resume_text":        resumeText,
			"additional_details": additionalDetails,
			"profile_completed":  true,
			"joined_waitlist":    true,
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepo) SearchCount(ctx context.Context, id string) (int, error) {
	var po UserPO
	err := r.db.WithContext(ctx).
		Select("searches").
		Where("id = ?", id).
		Take(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperrors.New(apperrors.ErrUserNotFound)
		}
		return 0, err
	}
	return po.Searches, nil
}

// IncrementSearches bumps the counter with a single atomic UPDATE,
// safe under concurrent searches from the same account.
func (r *UserRepo) IncrementSearches(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&UserPO{}).
		Where("id = ?", id).
		UpdateColumn("searches", gorm.Expr("searches + ?", 1))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.New(apperrors.ErrUserNotFound)
	}
	return nil
}

func (r *UserRepo) toUser(po *UserPO) *biz.User {
	return &biz.User{
		ID:                po.ID,
		Username:          po.Username,
		Email:             po.Email,
		Searches:          po.Searches,
		ResumeText:        po.ResumeText,
		AdditionalDetails: po.AdditionalDetails,
		ProfileCompleted:  po.ProfileCompleted,
		JoinedWaitlist:    po.JoinedWaitlist,
		CreatedAt:         po.CreatedAt,
		UpdatedAt:         po.UpdatedAt,
	}
}
