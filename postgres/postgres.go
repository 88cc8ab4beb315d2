// Package postgres installs SQL functions that mirror the Go codec, so codes
// can be issued, encoded and decoded inside Postgres.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Config holds the code sequence configuration.
type Config struct {
	Start   int64
	MaxCode int64
}

// DefaultConfig returns the default configuration, matching b32.NewGenerator(1)
// and b32.MaxCode.
func DefaultConfig() Config {
	return Config{
		Start:   1,
		MaxCode: 9999999999,
	}
}

var (
	ErrConfigMismatch = errors.New("b32: database config does not match application config")
	ErrInvalidConfig  = errors.New("b32: invalid config")
)

func (c Config) validate() error {
	if c.MaxCode < 1 || c.Start < 0 || c.Start > c.MaxCode {
		return fmt.Errorf("%w: start=%d max_code=%d", ErrInvalidConfig, c.Start, c.MaxCode)
	}
	return nil
}

// Migrate runs the idempotent migration with the given configuration.
// If the database already has a different configuration, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _b32_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			start bigint NOT NULL,
			max_code bigint NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("b32: create config table: %w", err)
	}

	stored, err := GetConfig(ctx, db)
	switch {
	case err == nil:
		if stored != cfg {
			return fmt.Errorf("%w: db has start=%d max_code=%d, app has start=%d max_code=%d",
				ErrConfigMismatch, stored.Start, stored.MaxCode, cfg.Start, cfg.MaxCode)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO _b32_config (start, max_code) VALUES ($1, $2)`,
			cfg.Start, cfg.MaxCode)
		if err != nil {
			return fmt.Errorf("b32: insert config: %w", err)
		}
	default:
		return fmt.Errorf("b32: read config: %w", err)
	}

	if _, err = db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return fmt.Errorf("b32: run migrations: %w", err)
	}
	return nil
}

// NextCode returns the next code from the database sequence.
func NextCode(ctx context.Context, db *sql.DB) (int64, error) {
	var code int64
	err := db.QueryRowContext(ctx, "SELECT b32_next_code()").Scan(&code)
	return code, err
}

// GetConfig reads the configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT start, max_code FROM _b32_config`).Scan(&cfg.Start, &cfg.MaxCode)
	return cfg, err
}

func generateSQL(cfg Config) string {
	return fmt.Sprintf(`
-- Sequence
CREATE SEQUENCE IF NOT EXISTS b32_code_seq MINVALUE 0 MAXVALUE %d START %d NO CYCLE;

CREATE OR REPLACE FUNCTION b32_next_code()
  RETURNS bigint
  LANGUAGE sql
  VOLATILE
  AS $$
  SELECT nextval('b32_code_seq');
$$;

-- Crockford Base32 encoding/decoding
CREATE OR REPLACE FUNCTION crockford_encode(n bigint)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := '0123456789ABCDEFGHJKMNPQRSTVWXYZ';
  result text := '';
BEGIN
  IF n < 0 THEN
    RAISE EXCEPTION 'crockford: invalid input: negative value %%', n;
  END IF;
  IF n = 0 THEN
    RETURN '0';
  END IF;
  WHILE n > 0 LOOP
    result := substring(alphabet FROM (n %% 32)::int + 1 FOR 1) || result;
    n := n / 32;
  END LOOP;
  RETURN result;
END;
$$;

CREATE OR REPLACE FUNCTION crockford_decode(encoded text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := '0123456789ABCDEFGHJKMNPQRSTVWXYZ';
  normalized text;
  c text;
  p int;
  result bigint := 0;
BEGIN
  normalized := translate(replace(upper(encoded), '-', ''), 'OIL', '011');
  IF char_length(normalized) = 0 THEN
    RAISE EXCEPTION 'crockford: invalid input: no symbols in %%', encoded;
  END IF;
  FOR i IN 1..char_length(normalized) LOOP
    c := substring(normalized FROM i FOR 1);
    p := position(c IN alphabet);
    IF p = 0 THEN
      RAISE EXCEPTION 'crockford: invalid character %% in %%', c, encoded;
    END IF;
    IF result > (9223372036854775807 - (p - 1)) / 32 THEN
      RAISE EXCEPTION 'crockford: value overflows bigint: %%', encoded;
    END IF;
    result := (result * 32) + (p - 1);
  END LOOP;
  RETURN result;
END;
$$;

-- Base58 encoding/decoding
CREATE OR REPLACE FUNCTION b58_decode(encoded text)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := '123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz';
  c text;
  p int;
  result bigint := 0;
BEGIN
  IF char_length(encoded) = 0 THEN
    RAISE EXCEPTION 'base58: empty string';
  END IF;
  FOR i IN 1..char_length(encoded) LOOP
    c := substring(encoded FROM i FOR 1);
    p := position(c IN alphabet);
    IF p = 0 THEN
      RAISE EXCEPTION 'base58: invalid character %%', c;
    END IF;
    IF result > (9223372036854775807 - (p - 1)) / 58 THEN
      RAISE EXCEPTION 'base58: value overflows bigint: %%', encoded;
    END IF;
    result := (result * 58) + (p - 1);
  END LOOP;
  RETURN result;
END;
$$;

CREATE OR REPLACE FUNCTION b58_encode(n bigint)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  alphabet text := '123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz';
  result text := '';
BEGIN
  IF n = 0 THEN
    RETURN '1';
  END IF;
  WHILE n > 0 LOOP
    result := substring(alphabet FROM (n %% 58)::int + 1 FOR 1) || result;
    n := n / 58;
  END LOOP;
  RETURN result;
END;
$$;
`,
		cfg.MaxCode, // b32_code_seq MAXVALUE
		cfg.Start,   // b32_code_seq START
	)
}
