/*
Salvod starts a Salvo relay server and begins listening for new connections.

Usage:

	salvod [flags]
	salvod [flags] -l [[ADDRESS]:PORT]

Once started, the relay accepts HTTP requests and responds to them using REST
protocol. Players register, log in, and then submit command lines for a game;
each line is checked for well-formedness and, if accepted, recorded in the
game's command history. By default the server listens on localhost:8080.

Configuration is read from, in order of increasing precedence, a TOML config
file given with --config, the SALVO_LISTEN_ADDRESS, SALVO_TOKEN_SECRET, and
SALVO_DATABASE environment variables, and the flags below.

If a token secret is not given, one is generated at random. In that mode all
tokens become invalid as soon as the server shuts down. This is suitable for
testing, but a secret must be configured if running in production.

The flags are:

	-v, --version
		Give the current version of the relay server and then exit.

	-c, --config FILE
		Load configuration from the given TOML file.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing tokens. If there are less than 32
		bytes in the secret, it will be repeated until there are. The maximum
		size is 64 bytes.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of inmem or
		sqlite. inmem has no further params. sqlite needs the path to the data
		directory, such as sqlite:path/to/db_dir.

	--debug
		Log every command validation.
*/
package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dekarrin/salvo/internal/version"
	"github.com/dekarrin/salvo/server"
	"github.com/spf13/pflag"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the Salvo relay server and then exit.")
	flagConfig  = pflag.StringP("config", "c", "", "Load configuration from the given TOML file.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB      = pflag.String("db", "", "Use the given DB connection string.")
	flagDebug   = pflag.Bool("debug", false, "Log every command validation.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Salvo v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	var cfg server.Config
	var err error

	if *flagConfig != "" {
		cfg, err = server.LoadConfigFile(*flagConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not load config: %s\n", err)
			os.Exit(1)
		}
	}

	cfg, err = cfg.WithEnv(os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\nDo -h for help.\n", err)
		os.Exit(1)
	}

	if pflag.Lookup("listen").Changed {
		cfg.ListenAddress = *flagListen
	}
	if pflag.Lookup("db").Changed {
		cfg.DB, err = server.ParseDBConnString(*flagDB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %s\nDo -h for help.\n", err)
			os.Exit(1)
		}
	}
	if pflag.Lookup("secret").Changed {
		cfg.TokenSecret = []byte(*flagSecret)
	}
	if *flagDebug {
		cfg.Debug = true
	}

	if len(cfg.TokenSecret) > 0 {
		for len(cfg.TokenSecret) < server.MinSecretSize {
			doubled := make([]byte, len(cfg.TokenSecret)*2)
			copy(doubled, cfg.TokenSecret)
			copy(doubled[len(cfg.TokenSecret):], cfg.TokenSecret)
			cfg.TokenSecret = doubled
		}
	} else {
		// use all 64 possible bytes if doing a generated secret
		cfg.TokenSecret = make([]byte, server.MaxSecretSize)
		if _, err := rand.Read(cfg.TokenSecret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}

		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	ss, err := server.New(cfg, nil)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	defer ss.Close()
	log.Printf("DEBUG Server initialized")

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		<-sigs

		log.Printf("INFO  Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := ss.Shutdown(ctx); err != nil {
			log.Printf("ERROR shutdown: %v", err)
		}
	}()

	log.Printf("INFO  Starting Salvo relay server %s...", version.ServerCurrent)
	if err := ss.ServeForever(); err != nil {
		log.Printf("FATAL %v", err)
		ss.Close()
		os.Exit(2)
	}
}
