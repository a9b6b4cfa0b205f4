package main

import (
	"fmt"
	"io/ioutil"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/Allan0411/Notes-API/log"
)

var (
	// flags
	env        string
	configFile string

	// logger
	logger log.Logger

	// configuration
	cfg Configuration
)

type Configuration struct {
	Auth struct {
		Key string `toml:"key"`
	} `toml:"auth"`
	Web struct {
		Addr string `toml:"addr"`
	} `toml:"web"`
	Bolt struct {
		Collab string `toml:"collab"`
		Notes  string `toml:"notes"`
		Users  string `toml:"users"`
	} `toml:"bolt"`
	Bleve struct {
		Store string `toml:"store"`
	} `toml:"bleve"`
	MySQL struct {
		Host     string `toml:"host"`
		Port     string `toml:"port"`
		Username string `toml:"username"`
		Password string `toml:"password"`
		Database string `toml:"database"`
	} `toml:"mysql"`
	SMTP struct {
		From     string `toml:"from"`
		Password string `toml:"password"`
		Server   string `toml:"server"`
		Addr     string `toml:"addr"`
	} `toml:"smtp"`
	Gemini struct {
		Key        string `toml:"key"`
		TextModel  string `toml:"text_model"`
		ImageModel string `toml:"image_model"`
	} `toml:"gemini"`
}

func init() {
	RootCmd.PersistentFlags().StringVar(&env, "env", "dev", "environment")
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file")
}

var RootCmd = cobra.Command{
	Use:   "notesapi",
	Short: "Note-taking backend with shared notes",
	Long:  "Note-taking backend with shared notes",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = log.New(env)

		if configFile == "" {
			configFile = path.Join("configuration", fmt.Sprintf("config.%s.toml", env))
		}

		cfgData, err := ioutil.ReadFile(configFile)
		if err != nil {
			logger.Fatal("error reading configuration:", err)
		}

		if err := toml.Unmarshal(cfgData, &cfg); err != nil {
			logger.Fatal("error unmarshalling configuration:", err)
		}
	},
}
