package pngme

import "testing"

func TestSaveOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := defaultSaveOptions()

		if opts.backupSuffix != "" {
			t.Errorf("expected empty backupSuffix, got %q", opts.backupSuffix)
		}
		if opts.validate {
			t.Error("expected validate to be false")
		}
		if opts.preserveModTime {
			t.Error("expected preserveModTime to be false")
		}
	})

	t.Run("all options combined", func(t *testing.T) {
		opts := defaultSaveOptions()

		for _, opt := range []SaveOption{
			WithBackup(".backup"),
			WithValidation(),
			WithPreserveModTime(),
		} {
			opt(opts)
		}

		if opts.backupSuffix != ".backup" {
			t.Errorf("expected backupSuffix %q, got %q", ".backup", opts.backupSuffix)
		}
		if !opts.validate {
			t.Error("expected validate to be true")
		}
		if !opts.preserveModTime {
			t.Error("expected preserveModTime to be true")
		}
	})
}

func TestOpenOptions(t *testing.T) {
	opts := defaultOptions()
	if c := opts.container(); c.MaxChunkSize != 0 || c.StrictOrdering {
		t.Errorf("unexpected defaults: %+v", c)
	}

	WithMaxChunkSize(1024)(opts)
	WithStrictOrdering()(opts)

	c := opts.container()
	if c.MaxChunkSize != 1024 {
		t.Errorf("MaxChunkSize = %d, want 1024", c.MaxChunkSize)
	}
	if !c.StrictOrdering {
		t.Error("expected StrictOrdering to be true")
	}
}

func TestMessageOptions(t *testing.T) {
	opts := defaultMessageOptions()
	if opts.codec != CodecPlain || opts.maxSize != DefaultMaxMessageSize {
		t.Errorf("unexpected defaults: %+v", opts)
	}

	WithCodec(CodecZlib)(opts)
	WithMaxMessageSize(0)(opts)
	if opts.codec != CodecZlib || opts.maxSize != 0 {
		t.Errorf("options not applied: %+v", opts)
	}
}
