package main

import (
	"fmt"
	"net/http"
	"path"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/simantic-io/simantic/cmd/dashboard/config"
	"github.com/simantic-io/simantic/pkg/dashboard/git/customScm"
	"github.com/simantic-io/simantic/pkg/dashboard/server"
	"github.com/simantic-io/simantic/pkg/dashboard/server/streaming"
	"github.com/simantic-io/simantic/pkg/dashboard/storage"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	log "github.com/sirupsen/logrus"
)

func main() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Warnf("could not load .env file, relying on env vars")
	}

	config, err := config.Environ()
	if err != nil {
		log.Fatalln("main: invalid configuration")
	}

	initLogger(config)
	if log.IsLevelEnabled(log.TraceLevel) {
		log.Traceln(config.String())
	}

	if config.JWTSecret == "" {
		panic(fmt.Errorf("please provide the JWT_SECRET variable"))
	}
	if config.Github.ClientID == "" {
		panic(fmt.Errorf("please provide the GITHUB_CLIENT_ID variable"))
	}

	clientHub := streaming.NewClientHub()
	go clientHub.Run()

	store := store.New(
		config.Database.Driver,
		config.Database.Config,
		config.Database.EncryptionKey,
	)

	resumeStore, err := storage.NewResumeStore(config.UploadPath)
	if err != nil {
		panic(err)
	}

	r := server.SetupRouter(
		config,
		clientHub,
		store,
		customScm.NewGitService(),
		resumeStore,
	)
	err = http.ListenAndServe(":9000", r)
	log.Error(err)
}

// helper function configures the logging.
func initLogger(c *config.Config) {
	log.SetReportCaller(true)

	customFormatter := &log.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			filename := path.Base(f.File)
			return "", fmt.Sprintf("[%s:%d]", filename, f.Line)
		},
	}
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)

	if c.Logging.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if c.Logging.Trace {
		log.SetLevel(log.TraceLevel)
	}
}
