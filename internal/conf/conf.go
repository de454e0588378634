package conf

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	_ "github.com/go-kratos/kratos/v2/encoding/yaml"
)

// Bootstrap is the root of the service configuration.
type Bootstrap struct {
	Data  *Data  `json:"data"`
	Bloom *Bloom `json:"bloom"`
}

// Data holds the store connection settings.
type Data struct {
	Redis *Redis `json:"redis"`
}

// Redis mirrors pkg/redis.Params.
type Redis struct {
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	Username     string   `json:"username"`
	Password     string   `json:"password"`
	DB           int      `json:"db"`
	Protocol     int      `json:"protocol"`
	ReadTimeout  Duration `json:"read_timeout"`
	WriteTimeout Duration `json:"write_timeout"`
}

// Bloom lists the filters the service expects to exist.
type Bloom struct {
	Filters []FilterSpec `json:"filters"`
}

// FilterSpec describes a filter to reserve at startup.
type FilterSpec struct {
	Key       string  `json:"key"`
	ErrorRate float64 `json:"error_rate"`
	Capacity  int64   `json:"capacity"`
	// Expansion <= 0 reserves a non-scaling filter.
	Expansion *int64 `json:"expansion"`
}

// Duration decodes "200ms"-style strings as well as integer nanoseconds.
type Duration time.Duration

func (d Duration) AsDuration() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		parsed, err := time.ParseDuration(t)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", t, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(time.Duration(t))
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %v", v)
	}
	return nil
}

// Load reads and decodes the config file at path.
func Load(path string) (*Bootstrap, error) {
	c := config.New(config.WithSource(file.NewSource(path)))
	defer c.Close()

	if err := c.Load(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	var bc Bootstrap
	if err := c.Scan(&bc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if bc.Data == nil {
		bc.Data = &Data{}
	}
	if bc.Bloom == nil {
		bc.Bloom = &Bloom{}
	}
	return &bc, nil
}
