package store

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/model"
)

// Repository reads and writes the five ritual records over a KV.
type Repository struct {
	kv     KV
	logger *zap.Logger
}

// NewRepository wraps kv. A nil logger is replaced with a no-op logger.
func NewRepository(kv KV, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{kv: kv, logger: logger}
}

// load decodes key into v. It returns false when the key is absent, holds
// JSON null, decodes to a zero value, or does not decode at all; the caller
// then uses its default.
func (r *Repository) load(ctx context.Context, key string, v any) (bool, error) {
	raw, found, err := r.kv.GetString(ctx, key)
	if err != nil {
		return false, err
	}
	raw = strings.TrimSpace(raw)
	if !found || raw == "" || raw == "null" {
		return false, nil
	}
	if err := unmarshalRecord(raw, v); err != nil {
		r.logger.Warn("Discarding unreadable record, using default",
			zap.String("key", key),
			zap.Error(err),
		)
		return false, nil
	}
	if reflect.ValueOf(v).Elem().IsZero() {
		r.logger.Warn("Discarding empty record, using default", zap.String("key", key))
		return false, nil
	}
	return true, nil
}

func (r *Repository) save(ctx context.Context, key string, v any) error {
	data, err := marshalRecord(v)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err := r.kv.SetString(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	r.logger.Debug("Record saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// GetRoutine returns the stored routine for t or its default.
func (r *Repository) GetRoutine(ctx context.Context, t model.RoutineType) (model.Routine, error) {
	var routine model.Routine
	ok, err := r.load(ctx, RoutineKey(t), &routine)
	if err != nil {
		return model.Routine{}, fmt.Errorf("get %s routine: %w", t, err)
	}
	if !ok {
		return DefaultRoutine(t), nil
	}
	return routine.Clone(), nil
}

// SaveRoutine overwrites the routine for t.
func (r *Repository) SaveRoutine(ctx context.Context, t model.RoutineType, routine model.Routine) error {
	return r.save(ctx, RoutineKey(t), routine.Clone())
}

// GetStreakData returns the stored streak ledger or an empty one.
func (r *Repository) GetStreakData(ctx context.Context) (model.StreakData, error) {
	var data model.StreakData
	ok, err := r.load(ctx, KeyStreakData, &data)
	if err != nil {
		return model.StreakData{}, fmt.Errorf("get streak data: %w", err)
	}
	if !ok {
		return DefaultStreakData(), nil
	}
	return data.Clone(), nil
}

// SaveStreakData overwrites the streak ledger.
func (r *Repository) SaveStreakData(ctx context.Context, data model.StreakData) error {
	return r.save(ctx, KeyStreakData, data.Clone())
}

// GetSettings returns the stored settings or the defaults.
func (r *Repository) GetSettings(ctx context.Context) (model.Settings, error) {
	var s model.Settings
	ok, err := r.load(ctx, KeySettings, &s)
	if err != nil {
		return model.Settings{}, fmt.Errorf("get settings: %w", err)
	}
	if !ok {
		return DefaultSettings(), nil
	}
	return s, nil
}

// SaveSettings validates s against the settings schema, then overwrites it.
func (r *Repository) SaveSettings(ctx context.Context, s model.Settings) error {
	if err := model.ValidateSettings(s); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return r.save(ctx, KeySettings, s)
}

// GetAudioLibrary returns the stored clip list or an empty list.
func (r *Repository) GetAudioLibrary(ctx context.Context) ([]model.AudioClip, error) {
	var clips []model.AudioClip
	ok, err := r.load(ctx, KeyAudioLibrary, &clips)
	if err != nil {
		return nil, fmt.Errorf("get audio library: %w", err)
	}
	if !ok || clips == nil {
		return DefaultAudioLibrary(), nil
	}
	return clips, nil
}

// SaveAudioLibrary overwrites the clip list.
func (r *Repository) SaveAudioLibrary(ctx context.Context, clips []model.AudioClip) error {
	if clips == nil {
		clips = []model.AudioClip{}
	}
	return r.save(ctx, KeyAudioLibrary, clips)
}
