package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"

	yml "gopkg.in/yaml.v2"
)

var (
	// Version is the version number.  Typically injected via ldflags with git build
	Version = "1"

	// ConfigFileName is what it sounds like
	ConfigFileName = "odmrsrv.yml"
	k              = koanf.New(".")
)

func setupconfig() {
	k.Load(structs.Provider(Config{
		Addr: ":8000",
		Mock: true,
		Nodes: []ObjSetup{
			{Endpoint: "/odmr/siggen", Type: "siggen"}}}, "koanf"), nil)
	if err := k.Load(file.Provider(ConfigFileName), yaml.Parser()); err != nil {
		errtxt := err.Error()
		if !strings.Contains(errtxt, "no such") { // file missing, who cares
			log.Fatalf("error loading config: %v", err)
		}
	}
}

func root() {
	str := `odmrsrv serves lab instruments used in ODMR measurements over HTTP
and relays measurement datasets between sweep processes and plot
consumers.  Clients can leverage the excellent HTTP and websocket
libraries for any programming language.

Usage:
	odmrsrv <command>

Commands:
	run
	help
	mkconf
	conf
	version`
	fmt.Println(str)
}

func help() {
	str := `odmrsrv is amenable to configuration via its .yaml file.  For a primer
on YAML, see https://yaml.org/start.html

Without a configuration, the server starts with a single simulated
signal generator at /odmr/siggen.

No two endpoints can have the same URL.

The data relay is always served at /data; a sweep process pushes to
/data/<dataset>/source and consumers subscribe at /data/<dataset>/sink.

Hardware and matching "type" fields, case insensitive:
- simulated generator + photon counter: "siggen", "sim"
- Stanford Research Systems:
	> SG382 / SG384 / SG386 "srs", "sg380", "sg384", "sg386"

With Mock: true every configured device is replaced by the simulator.`
	fmt.Println(str)
}

func mkconf() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Create(ConfigFileName)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	err = yml.NewEncoder(f).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func printconf() {
	c := Config{}
	k.Unmarshal("", &c)
	err := yml.NewEncoder(os.Stdout).Encode(c)
	if err != nil {
		log.Fatal(err)
	}
}

func pversion() {
	fmt.Printf("odmrsrv version %v\n", Version)
}

func run() {
	c := Config{}
	err := k.Unmarshal("", &c)
	if err != nil {
		log.Fatal(err)
	}
	mux := BuildMux(c)
	log.Println("now listening for requests at ", c.Addr)
	log.Fatal(http.ListenAndServe(c.Addr, mux))
}

func main() {
	var cmd string
	args := os.Args
	if len(args) == 1 {
		root()
		return
	}
	setupconfig()
	cmd = args[1]
	cmd = strings.ToLower(cmd)
	switch cmd {
	case "help":
		help()
		return
	case "mkconf":
		mkconf()
		return
	case "conf":
		printconf()
		return
	case "run":
		run()
		return
	case "version":
		pversion()
		return
	default:
		log.Fatal("unknown command")
	}
}
