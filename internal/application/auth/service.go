package auth

import (
	"errors"
	"strings"

	"foodshare-backend/internal/domain"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// LoginInput for login request body.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SessionUserShape is the object stored in session and returned by /me.
type SessionUserShape struct {
	UserID   string `json:"user_id"`
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	OrgID    string `json:"org_id"`
	OrgName  string `json:"org_name"`
	Phone    string `json:"phone"`
}

// UserFinder abstracts the directory lookup (GORM in production, doubles in tests).
type UserFinder interface {
	FindByCredentials(email, password string, role domain.Role) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM and bcrypt.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByCredentials(email, password string, role domain.Role) (*domain.User, error) {
	return LoginUser(g.DB, LoginInput{Email: email, Password: password, Role: string(role)})
}

// LoginUser checks the credentials and the role the user signs in as. Any
// mismatch is reported as domain.ErrInvalidCredentials so callers cannot
// tell which part was wrong.
func LoginUser(db *gorm.DB, input LoginInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" || input.Role == "" {
		return nil, ErrCredentialsRequired
	}
	role := domain.Role(input.Role)
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	var u domain.User
	if err := db.Preload("Org").Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" || u.Role != role {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &u, nil
}

// ShapeFor is what gets stored in the session for u.
func ShapeFor(u *domain.User) SessionUserShape {
	out := SessionUserShape{
		UserID:   u.UserID.String(),
		Fullname: u.Fullname,
		Email:    u.Email,
		Role:     string(u.Role),
		OrgID:    u.OrgID.String(),
		Phone:    u.Phone,
	}
	if u.Org != nil {
		out.OrgName = u.Org.OrgName
	}
	return out
}

// VerifyUser validates session user and returns the shape for /me.
func VerifyUser(sessionUser interface{}) (*SessionUserShape, error) {
	if sessionUser == nil {
		return nil, ErrNotAuthenticated
	}
	m, ok := sessionUser.(map[string]interface{})
	if !ok {
		return nil, ErrNotAuthenticated
	}
	userID, _ := m["user_id"].(string)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	return &SessionUserShape{
		UserID:   userID,
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
		OrgID:    str(m["org_id"]),
		OrgName:  str(m["org_name"]),
		Phone:    str(m["phone"]),
	}, nil
}

// ActorFromSession turns the session user into the actor for listing operations.
func ActorFromSession(sessionUser interface{}) (domain.Actor, error) {
	shape, err := VerifyUser(sessionUser)
	if err != nil {
		return domain.Actor{}, err
	}
	userID, err := uuid.Parse(shape.UserID)
	if err != nil {
		return domain.Actor{}, ErrNotAuthenticated
	}
	role := domain.Role(shape.Role)
	if !role.Valid() {
		return domain.Actor{}, ErrNotAuthenticated
	}
	actor := domain.Actor{UserID: userID, Name: shape.Fullname, Role: role, OrgName: shape.OrgName}
	if shape.OrgID != "" {
		if actor.OrgID, err = uuid.Parse(shape.OrgID); err != nil {
			return domain.Actor{}, ErrNotAuthenticated
		}
	}
	return actor, nil
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
