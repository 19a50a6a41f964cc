package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

const path = "infra/config"

// MustLoad loads the config for the given key
func MustLoad(key string, v interface{}) []byte {

	b, err := ioutil.ReadFile(fmt.Sprintf("%s/%s.json", path, key))
	if err != nil {
		panic(fmt.Sprintf("could not load config for %s: %s", key, err.Error()))
	}

	err = json.Unmarshal(b, v)
	if err != nil {
		panic(fmt.Sprintf("could not unmarshal the config for %s: %s", key, err.Error()))
	}

	log.Info().Str("config", key).Msg("loaded default config")

	return b
}

// Settings are the process level settings, overridable from the environment
// with the VIRALITY prefix.
type Settings struct {
	StorageDir string  `envconfig:"STORAGE_DIR" default:"file-storage"`
	ModelName  string  `envconfig:"MODEL_NAME" default:"virality"`
	Target     string  `envconfig:"TARGET" default:"virality"`
	Mode       string  `envconfig:"MODE" default:"classification"`
	Epochs     int     `envconfig:"EPOCHS" default:"100"`
	BatchSize  int     `envconfig:"BATCH_SIZE" default:"8"`
	Rate       float64 `envconfig:"RATE" default:"0.05"`
	Dropout    float64 `envconfig:"DROPOUT" default:"0.2"`
	Split      float64 `envconfig:"SPLIT" default:"0.8"`
	Seed       int64   `envconfig:"SEED" default:"1"`
}

// MustLoadSettings resolves the settings from the environment.
func MustLoadSettings() Settings {
	var s Settings
	if err := envconfig.Process("virality", &s); err != nil {
		panic(fmt.Sprintf("could not process settings: %s", err.Error()))
	}
	return s
}
