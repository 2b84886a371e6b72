package authsvc

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"vehiclerental/model"
	bookingrepo "vehiclerental/repository/booking"
	reviewrepo "vehiclerental/repository/review"
	userrepo "vehiclerental/repository/user"
	"vehiclerental/util/hash"
	jwtutil "vehiclerental/util/jwt"
	"vehiclerental/util/mailer"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// errors used by controllers

type ErrCode string

const (
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds  ErrCode = "INVALID_CREDENTIALS"
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrBadResetToken ErrCode = "INVALID_OR_EXPIRED_TOKEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const resetTokenTTL = time.Hour

// Profile is the authenticated user's view of their own account.
type Profile struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Bookings []model.Booking `json:"bookings"`
	Reviews  []model.Review  `json:"reviews"`
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Profile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error)
	RequestReset(ctx context.Context, email string) error
	CompleteReset(ctx context.Context, token, newPassword string) error
}

type service struct {
	ur        userrepo.Repo
	br        bookingrepo.Repo
	rr        reviewrepo.Repo
	mail      mailer.Mailer
	secret    string
	tokenTTL  time.Duration
	clientURL string
}

func New(ur userrepo.Repo, br bookingrepo.Repo, rr reviewrepo.Repo, mail mailer.Mailer, secret string, tokenTTL time.Duration, clientURL string) Service {
	return &service{ur: ur, br: br, rr: rr, mail: mail, secret: secret, tokenTTL: tokenTTL, clientURL: clientURL}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, error) {
	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hashed,
		Role:         "user",
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		if strings.Contains(cn, "email") {
			return makeErr(ErrEmailTaken)
		}
		return makeErr(ErrUsernameTaken)
	}
	return nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", makeErr(ErrNotFound)
		}
		return nil, "", err
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	token, err := jwtutil.Issue(s.secret, u.ID, u.Username, u.IsAdmin(), s.tokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	bookings, err := s.br.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	reviews, err := s.rr.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Username: u.Username,
		Email:    u.Email,
		Bookings: bookings,
		Reviews:  reviews,
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileReq) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	if req.Username != "" {
		u.Username = req.Username
	}
	if req.Email != "" {
		u.Email = strings.ToLower(req.Email)
	}
	if req.Password != "" {
		hashed, err := hash.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hashed
	}

	if err := s.ur.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) RequestReset(ctx context.Context, email string) error {
	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)

	if err := s.ur.SetResetToken(ctx, u.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"You requested a password reset. Click the link below to reset your password:\n\n%s/reset-password/%s",
		s.clientURL, token,
	)
	return s.mail.Send(u.Email, "Password Reset Request", body)
}

func (s *service) CompleteReset(ctx context.Context, token, newPassword string) error {
	u, err := s.ur.ByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeErr(ErrBadResetToken)
		}
		return err
	}

	hashed, err := hash.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.ur.ResetPassword(ctx, u.ID, hashed)
}
