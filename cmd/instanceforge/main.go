// Command instanceforge is the CLI front end over the instance-manager
// engine (spec.md §1 lists the front end itself as out of scope; this
// file is a thin wrapper dispatching to pkg/launcher, pkg/materializer,
// pkg/mrpack, pkg/scanner, pkg/update, and pkg/remote). Grounded on
// main.go's gCommands dispatch table, generalized from mcdex's
// pack-centric subcommands to this spec's five operations.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"instanceforge/internal/consolelog"
	"instanceforge/internal/ierr"
	"instanceforge/pkg/httpfetch"
	"instanceforge/pkg/instance"
	"instanceforge/pkg/launcher"
	"instanceforge/pkg/materializer"
	"instanceforge/pkg/mrpack"
	"instanceforge/pkg/remote"
	"instanceforge/pkg/scanner"
	"instanceforge/pkg/update"
)

// msgPrinter formats the mod/file counts the scan and update summaries
// print with thousands separators, same as the teacher's project listings.
var msgPrinter = message.NewPrinter(language.English)

type command struct {
	Fn   func(args []string) error
	Desc string
	Args string
}

var gCommands = map[string]command{
	"scan": {
		Fn:   cmdScan,
		Desc: "Discover launcher roots and enumerate their instances",
		Args: "",
	},
	"install-mrpack": {
		Fn:   cmdInstallMrpack,
		Desc: "Materialize a new instance and install a local .mrpack into it",
		Args: "-archive <path> -name <name> [-root <launcher root>]",
	},
	"install-remote": {
		Fn:   cmdInstallRemote,
		Desc: "Fetch a modpack from the remote index and install it as a new instance",
		Args: "-base <url> -type <fabric|neoforge> -name <name> [-root <launcher root>]",
	},
	"update": {
		Fn:   cmdUpdate,
		Desc: "Reconcile an existing instance's mods against a fresh remote revision",
		Args: "-instance <content root> -base <url> -type <fabric|neoforge>",
	},
	"install-vanilla": {
		Fn:   cmdInstallVanilla,
		Desc: "Install a vanilla instance (external collaborator, not implemented here)",
		Args: "",
	},
}

func usage() {
	consolelog.Section("usage: instanceforge <command> [flags]\n\ncommands:\n")
	names := make([]string, 0, len(gCommands))
	for name := range gCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-16s %s\n", name, gCommands[name].Desc)
		if args := gCommands[name].Args; args != "" {
			fmt.Printf("  %-16s   %s\n", "", args)
		}
	}
}

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging of operations")
	flag.Parse()
	consolelog.Verbose = *verbose

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	name := flag.Arg(0)
	cmd, ok := gCommands[name]
	if !ok {
		consolelog.Warn("unknown command %q", name)
		usage()
		os.Exit(1)
	}

	if err := cmd.Fn(flag.Args()[1:]); err != nil {
		log.Fatalf("%+v\n", err)
	}
}

func cmdScan(args []string) error {
	roots := launcher.DiscoverRoots()
	if len(roots) == 0 {
		consolelog.Section("no launcher installations detected\n")
		return nil
	}

	instances, err := scanner.ScanAll(roots)
	if err != nil {
		return err
	}

	for _, inst := range instances {
		msgPrinter.Printf("%-30s %-14s mc=%-10s loader=%s mods=%d\n",
			inst.Name, inst.LauncherKind.String(), inst.MinecraftVersion, inst.ModLoader, inst.ModCount)
	}
	return nil
}

func cmdInstallMrpack(args []string) error {
	fs := flag.NewFlagSet("install-mrpack", flag.ExitOnError)
	archive := fs.String("archive", "", "path to a .mrpack file")
	name := fs.String("name", "", "instance name")
	root := fs.String("root", "", "launcher root path (defaults to the first detected root)")
	fs.Parse(args)

	if *archive == "" || *name == "" {
		return ierr.New(ierr.KindValidation, "install-mrpack requires -archive and -name")
	}

	launcherRoot, err := resolveRoot(*root)
	if err != nil {
		return err
	}

	result, err := materializer.AutoInstall(launcherRoot, *name, *archive)
	if err != nil {
		return err
	}

	consolelog.Section("Installed %s at %s (mc=%s, loader=%s)\n",
		*name, result.Handle.Path, result.Install.MinecraftVersion, result.Install.Loader)
	return nil
}

func cmdInstallRemote(args []string) error {
	fs := flag.NewFlagSet("install-remote", flag.ExitOnError)
	base := fs.String("base", "", "remote modpack index base URL")
	modpackType := fs.String("type", "", "fabric or neoforge")
	name := fs.String("name", "", "instance name")
	root := fs.String("root", "", "launcher root path (defaults to the first detected root)")
	fs.Parse(args)

	if *base == "" || *modpackType == "" || *name == "" {
		return ierr.New(ierr.KindValidation, "install-remote requires -base, -type and -name")
	}

	launcherRoot, err := resolveRoot(*root)
	if err != nil {
		return err
	}

	result, info, err := remote.InstallFromIndex(*base, *modpackType, launcherRoot, *name)
	if err != nil {
		return err
	}

	consolelog.Section("Installed %s v%s at %s\n", info.ServerName, info.Version, result.Handle.Path)
	return nil
}

func cmdUpdate(args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	instancePath := fs.String("instance", "", "instance content root")
	base := fs.String("base", "", "remote modpack index base URL")
	modpackType := fs.String("type", "", "fabric or neoforge")
	launcherRoot := fs.String("launcher-root", "", "launcher root path, for registry-backed families")
	kind := fs.String("kind", "", "launcher kind (Official, Prism, XMCL, AstralRinth, ModrinthApp, ...)")
	fs.Parse(args)

	if *instancePath == "" || *base == "" || *modpackType == "" {
		return ierr.New(ierr.KindValidation, "update requires -instance, -base and -type")
	}

	info, err := remote.FetchModpackInfo(*base, *modpackType)
	if err != nil {
		return err
	}

	idx, err := fetchIndexFromMrpack(info.DownloadURL)
	if err != nil {
		return err
	}

	result, err := update.Update(update.Request{
		ContentRoot:      *instancePath,
		LauncherRootPath: *launcherRoot,
		Kind:             parseLauncherKind(*kind),
		Index:            idx,
		RemoteInfo:       *info,
	})
	if err != nil {
		return err
	}

	consolelog.Section("%s\n", result.Message)
	for _, m := range result.UpdatedMods {
		fmt.Printf("  updated: %s\n", m)
	}
	for _, m := range result.NewMods {
		fmt.Printf("  added:   %s\n", m)
	}
	for _, e := range result.Errors {
		fmt.Printf("  error:   %s\n", e)
	}
	msgPrinter.Printf("%d updated, %d added, %d preserved, %d errors\n",
		len(result.UpdatedMods), len(result.NewMods), len(result.PreservedMods), len(result.Errors))
	return nil
}

func cmdInstallVanilla(args []string) error {
	return ierr.New(ierr.KindInstallationFailed,
		"install-vanilla is an external collaborator (spec.md §1): wire in a vanilla downloader/JRE provisioner to implement it")
}

func resolveRoot(path string) (instance.LauncherRoot, error) {
	if path != "" {
		return instance.LauncherRoot{Path: path, Kind: launcher.Classify(path)}, nil
	}
	roots := launcher.DiscoverRoots()
	if len(roots) == 0 {
		return instance.LauncherRoot{}, ierr.New(ierr.KindInstallationFailed, "no launcher roots detected; pass -root explicitly")
	}
	return roots[0], nil
}

// fetchIndexFromMrpack downloads the mrpack at url to a temp file and
// reads just its index, since the update engine only needs
// MrpackIndex.Files/Dependencies, not the full archive's overrides.
func fetchIndexFromMrpack(url string) (*instance.MrpackIndex, error) {
	tmp, err := os.CreateTemp("", "instanceforge-update-*.mrpack")
	if err != nil {
		return nil, ierr.Wrap(ierr.KindFilesystem, err, "create temp file")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := httpfetch.GetToFile(url, tmp.Name()); err != nil {
		return nil, err
	}

	arc, err := mrpack.Open(tmp.Name())
	if err != nil {
		return nil, err
	}
	defer arc.Close()

	return arc.ReadIndex()
}

func parseLauncherKind(s string) instance.LauncherKind {
	switch s {
	case "Official":
		return instance.Official
	case "Prism":
		return instance.Prism
	case "PrismCracked":
		return instance.PrismCracked
	case "XMCL":
		return instance.XMCL
	case "AstralRinth":
		return instance.AstralRinth
	case "ModrinthApp":
		return instance.ModrinthApp
	case "MultiMC":
		return instance.MultiMC
	case "ATLauncher":
		return instance.ATLauncher
	default:
		return instance.Other
	}
}
