package auth

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rustlingbird/chirprack/apperror"
	"github.com/rustlingbird/chirprack/model"
)

// TokenEnvelope is the wire shape both auth endpoints respond with.
type TokenEnvelope struct {
	AccessToken string `json:"access_token"`
}

// Gateway orchestrates signup and login. It is the only component that
// produces session tokens, everything behind it trusts the token subject.
//
// Both paths are single attempt: no retry, no lockout, no backoff. A
// production deployment should put throttling in front of login, see the
// hardening notes in DESIGN.md.
type Gateway struct {
	db     *gorm.DB
	issuer *TokenIssuer
}

func NewGateway(db *gorm.DB, issuer *TokenIssuer) *Gateway {
	return &Gateway{db: db, issuer: issuer}
}

// Signup registers a new user and returns a session token for it. A taken
// email fails with DuplicateUser via the unique index on users.email, all
// other storage failures surface as Internal.
func (g *Gateway) Signup(in model.SignupInput) (*TokenEnvelope, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid signup payload")
	}

	digest, err := HashPassword(in.Password)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.Internal, "hashing password")
	}

	user := model.User{
		Id:        uuid.New().String(),
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Hash:      digest,
	}
	if err := g.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.New(apperror.DuplicateUser, "user already exists")
		}
		return nil, apperror.Wrap(err, apperror.Internal, "creating user")
	}
	user.Hash = ""

	token, err := g.issuer.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenEnvelope{AccessToken: token}, nil
}

// Login verifies credentials and returns a fresh session token. Unknown email
// and wrong password both map to BadCredentials, distinguished only by the
// message.
func (g *Gateway) Login(in model.LoginInput) (*TokenEnvelope, error) {
	if err := in.Validate(); err != nil {
		return nil, apperror.Wrap(err, apperror.Validation, "invalid login payload")
	}

	var user model.User
	if err := g.db.Where("email = ?", in.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.BadCredentials, "user does not exist, please sign up first")
		}
		return nil, apperror.Wrap(err, apperror.Internal, "looking up user")
	}

	if !VerifyPassword(user.Hash, in.Password) {
		return nil, apperror.New(apperror.BadCredentials, "enter correct password")
	}
	user.Hash = ""

	token, err := g.issuer.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}
	return &TokenEnvelope{AccessToken: token}, nil
}
