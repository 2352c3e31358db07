package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.gatech.edu/ECEInnovation/MIPS-Assembler/assembler"
)

const DefaultPath = "mipsasmConfig.json"

type Config struct {
	LanguageServerAddr string `json:"languageServerAddr"`
	WebServerAddr      string `json:"webServerAddr"`
	LoggingEnabled     bool   `json:"loggingEnabled"`
	LogEndpoint        string `json:"logEndpoint"`
	TextBaseAddress    uint32 `json:"textBaseAddress"` // must be a multiple of 4
	StopOnFirstError   bool   `json:"stopOnFirstError"`
}

func Default() *Config {
	return &Config{
		LanguageServerAddr: ":2035",
		WebServerAddr:      ":2036",
	}
}

// Load reads the JSON file at path over the defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	conf := Default()
	b, e := os.ReadFile(path)
	if errors.Is(e, fs.ErrNotExist) {
		return conf, nil
	} else if e != nil {
		return nil, e
	}

	if e = json.Unmarshal(b, conf); e != nil {
		return nil, e
	}
	if conf.TextBaseAddress%4 != 0 {
		return nil, errors.New("textBaseAddress must be a multiple of 4")
	}
	return conf, nil
}

// AssemblerConfig returns the part of the configuration the assembler uses.
func (c *Config) AssemblerConfig() assembler.AssemblerConfig {
	return assembler.AssemblerConfig{
		TextBaseAddress:  c.TextBaseAddress,
		StopOnFirstError: c.StopOnFirstError,
	}
}
