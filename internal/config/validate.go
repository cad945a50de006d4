package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate_limit: requests_per_second and burst must be > 0")
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}

	if err := c.Study.validate(); err != nil {
		return fmt.Errorf("study: %w", err)
	}

	return nil
}

func (s *SRSConfig) validate() error {
	if s.MinEaseFactor <= 0 {
		return fmt.Errorf("min_ease_factor must be > 0 (got %v)", s.MinEaseFactor)
	}
	if s.DefaultEaseFactor < s.MinEaseFactor || s.DefaultEaseFactor > s.MaxEaseFactor {
		return fmt.Errorf("default_ease_factor must be within [%v, %v] (got %v)",
			s.MinEaseFactor, s.MaxEaseFactor, s.DefaultEaseFactor)
	}
	if s.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", s.MaxIntervalDays)
	}
	if s.FirstIntervalDays <= 0 || s.LapseIntervalDays <= 0 {
		return fmt.Errorf("first_interval_days and lapse_interval_days must be > 0")
	}
	if s.RelearnDelay < 0 {
		return fmt.Errorf("relearn_delay must be >= 0 (got %s)", s.RelearnDelay)
	}
	if s.GraduationReps < 0 || s.HardStreakThreshold <= 0 || s.RecoveryStreak <= 0 {
		return fmt.Errorf("graduation_reps must be >= 0, hard_streak_threshold and recovery_streak > 0")
	}

	for name, v := range map[string]int{
		"correct_threshold": s.CorrectThreshold,
		"vague_low":         s.VagueLow,
		"vague_high":        s.VagueHigh,
		"easy_threshold":    s.EasyThreshold,
	} {
		if v < 0 || v > 7 {
			return fmt.Errorf("%s must be within 0..7 (got %d)", name, v)
		}
	}
	if s.VagueLow > s.VagueHigh {
		return fmt.Errorf("vague_low must be <= vague_high (got %d > %d)", s.VagueLow, s.VagueHigh)
	}
	if s.VagueHigh >= s.CorrectThreshold {
		return fmt.Errorf("vague band [%d, %d] overlaps correct_threshold %d", s.VagueLow, s.VagueHigh, s.CorrectThreshold)
	}
	if s.EasyThreshold < s.CorrectThreshold {
		return fmt.Errorf("easy_threshold must be >= correct_threshold")
	}
	if s.LegacyCorrectThreshold < 0 || s.LegacyCorrectThreshold > 5 {
		return fmt.Errorf("legacy_correct_threshold must be within 0..5 (got %d)", s.LegacyCorrectThreshold)
	}

	table, err := ParsePointsTable(s.PointsTableRaw)
	if err != nil {
		return fmt.Errorf("points_table: %w", err)
	}
	s.PointsTable = table

	return nil
}

func (s *StudyConfig) validate() error {
	if s.DefaultBatchSize <= 0 || s.MaxBatchSize <= 0 {
		return fmt.Errorf("batch sizes must be > 0")
	}
	if s.DefaultBatchSize > s.MaxBatchSize {
		return fmt.Errorf("default_batch_size %d exceeds max_batch_size %d", s.DefaultBatchSize, s.MaxBatchSize)
	}
	if s.StaleSessionAfter < 0 {
		return fmt.Errorf("stale_session_after must be >= 0 (got %s)", s.StaleSessionAfter)
	}
	return nil
}

// ParsePointsTable parses eight comma-separated, non-negative, non-decreasing
// integers (points for quality 0..7).
func ParsePointsTable(raw string) ([8]int, error) {
	var table [8]int

	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != len(table) {
		return table, fmt.Errorf("expected %d values, got %d", len(table), len(parts))
	}

	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return table, fmt.Errorf("invalid value %q: %w", p, err)
		}
		if v < 0 {
			return table, fmt.Errorf("value for quality %d must be >= 0 (got %d)", i, v)
		}
		if i > 0 && v < table[i-1] {
			return table, fmt.Errorf("value for quality %d decreases (%d < %d)", i, v, table[i-1])
		}
		table[i] = v
	}

	return table, nil
}
