package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/gameguesser/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads a dotenv file into the process environment and then
// overlays Config with the GG_* variables. The file comes from -e/-env;
// otherwise ./.env is used when it exists. Variables already set in the
// environment win over the file. Errors panic, except for a missing
// default file.
func parseEnv(cfg *Config, args []string) {
	file := flagx.EnvFile(args)
	explicit := file != ""
	if !explicit {
		file = defaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
