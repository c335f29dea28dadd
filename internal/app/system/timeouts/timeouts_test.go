package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	Reset()
	if Ping() != DefaultPing || Short() != DefaultShort || Medium() != DefaultMedium || Long() != DefaultLong {
		t.Errorf("unexpected defaults: %+v", Current())
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Configure(Config{Short: 7 * time.Second})
	if Short() != 7*time.Second {
		t.Errorf("Short: got %v", Short())
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium changed: got %v", Medium())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("ATTENDHUB_TIMEOUT_PING", "750ms")
	t.Setenv("ATTENDHUB_TIMEOUT_LONG", "not-a-duration")
	t.Setenv("ATTENDHUB_TIMEOUT_MEDIUM", "-1s")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("applied: got %d, want 1", n)
	}
	if Ping() != 750*time.Millisecond {
		t.Errorf("Ping: got %v", Ping())
	}
	if Long() != DefaultLong || Medium() != DefaultMedium {
		t.Errorf("invalid values must be skipped: %+v", Current())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	<-ctx.Done()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("err: got %v", ctx.Err())
	}
}
