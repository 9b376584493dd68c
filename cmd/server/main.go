package main

import (
	"flag"
	"log"
	"net/http"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jlmedgue/taskpad/internal/config"
	"github.com/jlmedgue/taskpad/internal/notify"
	"github.com/jlmedgue/taskpad/internal/serverapp"
)

func main() {
	cfgPath := flag.String("config", "taskpad.yaml", "path to the YAML config file")
	dataDir := flag.String("data-dir", "", "override the storage directory")
	addr := flag.String("addr", "", "override the listen address (host:port)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg = config.FromEnv(cfg)
	if *dataDir != "" {
		cfg.Storage.Dir = *dataDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := log.Default()
	app, err := serverapp.New(serverapp.Options{
		Config:        cfg,
		Logger:        logger,
		Notifier:      notify.NewLogSink(logger),
		UseDiskStatic: serverapp.UseDiskStaticByEnv(),
	})
	if err != nil {
		log.Fatalf("build app: %v", err)
	}
	defer app.Close()

	listen := cfg.Addr()
	if *addr != "" {
		listen = *addr
	}
	logger.Printf("taskpad listening on http://%s", displayAddr(listen))
	log.Fatal(http.ListenAndServe(listen, app))
}

func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}
