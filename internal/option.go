package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	seed   bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSeed populates sample data at bootstrap before serving.
func WithSeed() Option {
	return func(a *application) {
		a.seed = true
	}
}
