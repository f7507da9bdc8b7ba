package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Miguel-Alz/trascontrol/internal/domain/models"
	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
	"github.com/Miguel-Alz/trascontrol/pkg/utils"
)

// InterfaceAuthService define el servicio de autenticación
type InterfaceAuthService interface {
	Login(username, password string) (*models.Usuario, string, error)
	CreateAdmin(username, password, email string) (*models.Usuario, error)
}

// AuthService verifica credenciales y emite tokens
type AuthService struct {
	DB     *gorm.DB
	Config *config.Config
	JWT    InterfaceJWTService
}

// NewAuthService crea un nuevo servicio de autenticación
func NewAuthService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) InterfaceAuthService {
	return &AuthService{
		DB:     db,
		Config: cfg,
		JWT:    jwtService,
	}
}

// Login busca un usuario activo por username exacto, compara el hash y emite
// el token. Un intento fallido nunca toca ultimo_acceso.
func (s *AuthService) Login(username, password string) (*models.Usuario, string, error) {
	var usuario models.Usuario
	err := s.DB.Where("username = ? AND activo = ?", username, true).First(&usuario).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", &DomainError{Kind: ErrInvalidCredentials, Msg: "Credenciales inválidas"}
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, usuario.Password) {
		return nil, "", &DomainError{Kind: ErrInvalidCredentials, Msg: "Credenciales inválidas"}
	}

	// Actualizar último acceso solo en login exitoso
	ahora := time.Now()
	if err := s.DB.Model(&usuario).Update("ultimo_acceso", ahora).Error; err != nil {
		return nil, "", err
	}
	usuario.UltimoAcceso = &ahora

	token, err := s.JWT.GenerateToken(&usuario)
	if err != nil {
		return nil, "", err
	}

	return &usuario, token, nil
}

// CreateAdmin crea la cuenta de administrador inicial. Si el username ya
// existe retorna conflicto.
func (s *AuthService) CreateAdmin(username, password, email string) (*models.Usuario, error) {
	var count int64
	if err := s.DB.Model(&models.Usuario{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, conflict("El usuario ya existe")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	usuario := models.Usuario{
		Username: username,
		Password: hashed,
		Email:    email,
		Rol:      "admin",
		Activo:   true,
	}
	if err := s.DB.Create(&usuario).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, conflict("El usuario ya existe")
		}
		return nil, err
	}

	return &usuario, nil
}
