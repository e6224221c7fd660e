package settings

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// Service exposes the known settings merged with their defaults
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a new settings service
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("service", "settings").Logger(),
	}
}

// GetAll returns every known setting, stored values overriding defaults
func (s *Service) GetAll(ctx context.Context) (map[string]interface{}, error) {
	dbValues, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(SettingDefaults))
	for key, defaultValue := range SettingDefaults {
		result[key] = defaultValue
		dbValue, exists := dbValues[key]
		if !exists {
			continue
		}
		if StringSettings[key] {
			result[key] = dbValue
		} else if floatVal, err := strconv.ParseFloat(dbValue, 64); err == nil {
			result[key] = floatVal
		}
	}

	return result, nil
}

// GetString returns a string setting, falling back to its default
func (s *Service) GetString(ctx context.Context, key string) (string, error) {
	defaultValue, _ := SettingDefaults[key].(string)
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		return defaultValue, err
	}
	if value == nil || *value == "" {
		return defaultValue, nil
	}
	return *value, nil
}

// GetFloat returns a numeric setting, falling back to its default
func (s *Service) GetFloat(ctx context.Context, key string) (float64, error) {
	defaultValue, _ := SettingDefaults[key].(float64)
	return s.repo.GetFloat(ctx, key, defaultValue)
}

// Set validates and stores a known setting
func (s *Service) Set(ctx context.Context, key string, value interface{}) error {
	if _, exists := SettingDefaults[key]; !exists {
		return fmt.Errorf("unknown setting: %s", key)
	}

	var strValue string
	if StringSettings[key] {
		v, ok := value.(string)
		if !ok {
			return fmt.Errorf("%s must be a string", key)
		}
		strValue = v
	} else {
		var floatVal float64
		switch v := value.(type) {
		case float64:
			floatVal = v
		case int:
			floatVal = float64(v)
		default:
			return fmt.Errorf("%s must be a number", key)
		}
		if floatVal < 0 {
			return fmt.Errorf("%s must be non-negative", key)
		}
		strValue = fmt.Sprintf("%f", floatVal)
	}

	if key == KeyCalendarMarket && strValue != "XNYS" && strValue != "NONE" {
		return fmt.Errorf("unsupported market: %s", strValue)
	}

	description := SettingDescriptions[key]
	if err := s.repo.Set(ctx, key, strValue, &description); err != nil {
		return err
	}

	s.log.Info().Str("key", key).Str("value", strValue).Msg("Setting updated")
	return nil
}
