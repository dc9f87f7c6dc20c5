package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/talkincode/auctiontrack/config"
	"github.com/talkincode/auctiontrack/internal/app"
	"github.com/talkincode/auctiontrack/internal/trackerapi"
	"github.com/talkincode/auctiontrack/internal/webserver"
	"go.uber.org/zap"
)

var (
	h        = flag.Bool("h", false, "help usage")
	conffile = flag.String("c", "", "config yaml file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	initcfg  = flag.Bool("initcfg", false, "write the default config file and exit")
)

func printHelp() {
	if *h {
		ustr := fmt.Sprintf("auctiontrack usage: auctiontrack -h\nOptions:")
		fmt.Fprintf(os.Stderr, "%s\n", ustr)
		flag.PrintDefaults()
		os.Exit(0)
	}
}

func main() {
	flag.Parse()
	printHelp()

	if *initcfg {
		err := installInitConfig()
		if err != nil {
			fmt.Println(err.Error())
		}
		return
	}

	appConfig := config.LoadConfig(*conffile)

	application := app.NewApplication(appConfig)
	application.Init(appConfig)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
		return
	}

	ws := webserver.Init(application)
	trackerapi.Register()

	go func() {
		if err := ws.Listen(); err != nil {
			zap.S().Fatal(err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	zap.S().Infof("shutting down on signal %s", sig)
}

// installInitConfig writes the default yaml config to the standard path.
func installInitConfig() error {
	return config.InstallDefault("/etc/auctiontrack.yml")
}
