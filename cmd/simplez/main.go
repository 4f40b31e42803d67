// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/simplez/config"
	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/emulator"
	"github.com/ezrec/simplez/listing"
	"github.com/ezrec/simplez/store"
)

func main() {
	var configFile string
	var compile string
	var input string
	var output string
	var format string
	var list bool
	var run bool
	var ticks int
	var workspace string
	var session string
	var verbose bool

	flag.StringVar(&configFile, "config", "", ".toml settings file")
	flag.StringVar(&compile, "c", "", ".sz file to assemble")
	flag.StringVar(&input, "i", "", "Memory image to load")
	flag.StringVar(&output, "o", "", "Memory image to save")
	flag.StringVar(&format, "t", "", "Image format, 'text' or 'bin' (default: by extension)")
	flag.BoolVar(&list, "l", false, "List assembled code and memory")
	flag.BoolVar(&run, "r", false, "Run until halt, and list registers")
	flag.IntVar(&ticks, "n", 0, "Tick limit (default: from settings)")
	flag.StringVar(&workspace, "w", "", "Workspace directory")
	flag.StringVar(&session, "s", "", "Workspace session name")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		atexit.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(input) != 0 {
		atexit.Fatalf("%v: -c and -i are exclusive", os.Args[0])
	}

	if (len(workspace) == 0) != (len(session) == 0) {
		atexit.Fatalf("%v: -w and -s must be used together", os.Args[0])
	}

	if len(session) != 0 && !store.ValidSessionName(session) {
		atexit.Fatalf("%v: %v", os.Args[0], store.ErrSessionName(session))
	}

	conf := config.Default()
	if len(configFile) != 0 {
		var err error
		conf, err = config.Load(configFile)
		if err != nil {
			atexit.Fatalf("%v: %v", configFile, err)
		}
	}

	verbose = verbose || conf.Verbose
	if verbose {
		for key, value := range conf.Defines() {
			log.Printf("config: %v = %v", key, value)
		}
	}

	style, err := listing.StyleOf(conf.Listing.Style)
	if err != nil {
		atexit.Fatalf("%v: %v", conf.Listing.Style, err)
	}
	lst := &listing.Listing{SkipZero: conf.Listing.SkipZero, Style: style}

	emu := emulator.NewEmulator(conf.HistoryDepth)
	emu.Verbose = verbose
	emu.TickLimit = conf.MaxTicks
	if ticks > 0 {
		emu.TickLimit = ticks
	}

	// Open the workspace session, if any.
	var ws *store.Workspace
	var sess *store.Session
	if len(workspace) != 0 {
		err = os.MkdirAll(workspace, 0755)
		if err != nil {
			atexit.Fatalf("%v: %v", workspace, err)
		}
		ws = &store.Workspace{Verbose: verbose}
		err = ws.Unmarshal(store.DirFS(workspace))
		if err != nil {
			atexit.Fatalf("%v: %v", workspace, err)
		}
		sess, err = ws.Session(session)
		if err != nil {
			// A new session.
			sess = &store.Session{}
			err = ws.Put(session, sess)
			if err != nil {
				atexit.Fatalf("%v: %v", workspace, err)
			}
		}
	}

	// Assemble, from a file or from the session.
	source := ""
	sourceName := ""
	switch {
	case len(compile) != 0:
		data, err := os.ReadFile(compile)
		if err != nil {
			atexit.Fatalf("%v: %v", compile, err)
		}
		source = string(data)
		sourceName = compile
	case sess != nil && len(input) == 0:
		source = sess.Program
		sourceName = session
	}

	if len(sourceName) != 0 {
		asm := &cpu.Assembler{Verbose: verbose}
		for name, value := range conf.Predefines() {
			asm.Predefine(name, value)
		}
		prog, err := asm.Parse(strings.NewReader(source))
		if err != nil {
			atexit.Fatalf("%v: %v", sourceName, err)
		}
		emu.Load(prog)

		if sess != nil {
			sess.Program = source
		}
	}

	// Load a memory image, from a file or from the session.
	switch {
	case len(input) != 0:
		img := imageOf(input, format)
		inf, err := os.Open(input)
		if err != nil {
			atexit.Fatalf("%v: %v", input, err)
		}
		err = img.Unmarshal(inf)
		inf.Close()
		if err != nil {
			atexit.Fatalf("%v: %v", input, err)
		}
		emu.Load(&cpu.Program{Memory: img.Memory})
	case len(sourceName) == 0 && sess != nil && sess.Image != nil:
		emu.Load(&cpu.Program{Memory: sess.Image.Memory})
	}

	if run {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		atexit.Register(stop)

		count, err := emu.Run(ctx)
		stop()
		if err != nil {
			atexit.Fatalf("%v: %v", os.Args[0], err)
		}
		if verbose {
			log.Printf("%v: %d ticks", os.Args[0], count)
		}

		fmt.Println(lst.Registers(emu.Cpu))
	}

	mem := emu.Cpu.Memory()

	if list {
		if len(sourceName) != 0 {
			fmt.Println(lst.Code(emu.Program))
		}
		fmt.Println(lst.Memory(&mem, emu.Program))
	}

	if len(output) != 0 {
		img := imageOf(output, format)
		img.Memory = mem
		ouf, err := os.Create(output)
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
		err = img.Marshal(ouf)
		if cerr := ouf.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			atexit.Fatalf("%v: %v", output, err)
		}
	}

	if ws != nil {
		sess.Image = &store.Image{Format: store.FORMAT_BINARY, Memory: mem}
		err = ws.Marshal(store.DirFS(workspace))
		if err != nil {
			atexit.Fatalf("%v: %v", workspace, err)
		}
	}

	atexit.Exit(0)
}

// imageOf picks the image format from the -t flag, or from the file name.
func imageOf(name string, format string) (img *store.Image) {
	var err error
	img = &store.Image{}
	if len(format) != 0 {
		img.Format, err = store.ParseFormat(format)
	} else {
		img.Format, err = store.FormatOf(name)
	}
	if err != nil {
		atexit.Fatalf("%v: %v", name, err)
	}

	return
}
