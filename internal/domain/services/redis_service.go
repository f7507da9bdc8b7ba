package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Miguel-Alz/trascontrol/internal/infrastructure/config"
)

// InterfaceRedisService define la caché de resultados en Redis
type InterfaceRedisService interface {
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
}

// RedisService maneja las operaciones contra Redis. Los consumidores deben
// tratar cualquier error como caché fría y seguir contra la base de datos.
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService crea un nuevo servicio de Redis
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.GetRedisAddr(),
		DB:   cfg.RedisDB,
	})

	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// NewRedisServiceWithClient envuelve un cliente ya construido
func NewRedisServiceWithClient(client *redis.Client) *RedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Set guarda un valor serializado como JSON con expiración
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get recupera y deserializa un valor; redis.Nil cuando no existe
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}
