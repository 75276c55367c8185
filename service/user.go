package service

import (
	"errors"

	"arogyachat/model"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
}

type User struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
}

func (service *UserService) Register(user *User) error {
	if !user.Role.Valid() {
		return errors.New("role must be patient or doctor")
	}

	if model.UserExists(user.Email) {
		return errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("internal server error")
	}

	newUser := &model.User{
		Name:     user.Name,
		Email:    user.Email,
		Password: string(hashedPassword),
		Role:     user.Role,
	}
	if err := model.CreateUser(newUser); err != nil {
		return errors.New("internal server error")
	}
	return nil
}

func (service *UserService) Login(email, password string) (string, *model.User, error) {
	registeredUser, err := model.GetUserByEmail(email)
	if err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registeredUser.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid credentials")
	}

	ts := &TokenService{}
	token, err := ts.CreateToken(registeredUser.ID, registeredUser.Role)
	if err != nil {
		logger.Warnf("Error generating token: %v", err)
		return "", nil, errors.New("failed to generate token")
	}

	return token.AccessToken, registeredUser, nil
}
