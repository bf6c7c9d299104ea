package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	mdbadge "github.com/alnah/go-mdbadge"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name     string
	Desc     string
	Flags    []flagDef
	TakesDir bool // accepts a docs directory argument
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"log-level":  {Values: []string{"trace", "debug", "info", "warn", "error"}},
	"log-format": {Values: []string{"console", "json", "pretty"}},
	"style":      {Values: mdbadge.StyleNames()},

	// File flags with glob patterns
	"config": {FileGlob: "*.yaml,*.yml"},

	// Directory flags
	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the same FlagSets the commands parse.
func getCommands() []commandDef {
	flagsFor := func(name string) []flagDef {
		fs, _ := newCommandFlagSet(name)
		return extractFlagsFromFlagSet(fs)
	}

	return []commandDef{
		{Name: "build", Desc: "Rewrite shortcodes in every page", Flags: flagsFor("build"), TakesDir: true},
		{Name: "check", Desc: "Report shortcodes and unresolved links", Flags: flagsFor("check"), TakesDir: true},
		{Name: "watch", Desc: "Rebuild pages when they change", Flags: flagsFor("watch"), TakesDir: true},
		{Name: "config", Desc: "Print the effective configuration", Flags: flagsFor("config"), TakesDir: true},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var sb strings.Builder

	sb.WriteString("# bash completion for mdbadge\n")
	sb.WriteString("_mdbadge() {\n")
	sb.WriteString("    local cur prev cmd\n")
	sb.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	sb.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	sb.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	sb.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&sb, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    case \"$prev\" in\n")
	for _, fd := range uniqueValueFlags(cmds) {
		switch fd.Type {
		case flagEnum:
			fmt.Fprintf(&sb, "        --%s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", fd.Long, strings.Join(fd.Values, " "))
		case flagDir:
			fmt.Fprintf(&sb, "        --%s) COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n", fd.Long)
		case flagFile:
			fmt.Fprintf(&sb, "        --%s) COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n", fd.Long)
		}
	}
	sb.WriteString("    esac\n\n")
	sb.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "        %s)\n", c.Name)
		sb.WriteString("            if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&sb, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		sb.WriteString("            else\n")
		sb.WriteString("                COMPREPLY=($(compgen -d -- \"$cur\"))\n")
		sb.WriteString("            fi\n")
		sb.WriteString("            ;;\n")
	}
	sb.WriteString("        help) COMPREPLY=($(compgen -W \"build check watch config version completion\" -- \"$cur\")) ;;\n")
	sb.WriteString("        completion) COMPREPLY=($(compgen -W \"bash zsh fish\" -- \"$cur\")) ;;\n")
	sb.WriteString("    esac\n")
	sb.WriteString("}\n")
	sb.WriteString("complete -F _mdbadge mdbadge\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var sb strings.Builder

	sb.WriteString("#compdef mdbadge\n\n")
	sb.WriteString("_mdbadge() {\n")
	sb.WriteString("    local -a commands\n")
	sb.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	sb.WriteString("    )\n\n")
	sb.WriteString("    if (( CURRENT == 2 )); then\n")
	sb.WriteString("        _describe 'command' commands\n")
	sb.WriteString("        return\n")
	sb.WriteString("    fi\n\n")
	sb.WriteString("    case \"$words[2]\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "        %s)\n", c.Name)
		sb.WriteString("            _arguments \\\n")
		for _, fd := range c.Flags {
			fmt.Fprintf(&sb, "                '--%s[%s]%s' \\\n", fd.Long, zshEscape(fd.Desc), zshAction(fd))
		}
		sb.WriteString("                '*:docs directory:_files -/'\n")
		sb.WriteString("            ;;\n")
	}
	sb.WriteString("        completion) _values 'shell' bash zsh fish ;;\n")
	sb.WriteString("    esac\n")
	sb.WriteString("}\n\n")
	sb.WriteString("_mdbadge \"$@\"\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var sb strings.Builder

	sb.WriteString("# fish completion for mdbadge\n")
	sb.WriteString("complete -c mdbadge -f\n")
	names := strings.Join(commandNames(cmds), " ")
	for _, c := range cmds {
		fmt.Fprintf(&sb, "complete -c mdbadge -n 'not __fish_seen_subcommand_from %s' -a %s -d '%s'\n", names, c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		for _, fd := range c.Flags {
			fmt.Fprintf(&sb, "complete -c mdbadge -n '__fish_seen_subcommand_from %s' -l %s", c.Name, fd.Long)
			if fd.Short != "" {
				fmt.Fprintf(&sb, " -s %s", fd.Short)
			}
			switch fd.Type {
			case flagEnum:
				fmt.Fprintf(&sb, " -x -a '%s'", strings.Join(fd.Values, " "))
			case flagDir:
				sb.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagFile:
				sb.WriteString(" -r -F")
			case flagString, flagInt:
				sb.WriteString(" -x")
			}
			fmt.Fprintf(&sb, " -d '%s'\n", fishEscape(fd.Desc))
		}
	}
	sb.WriteString("complete -c mdbadge -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// uniqueValueFlags returns flags that take a completable value, once each.
func uniqueValueFlags(cmds []commandDef) []flagDef {
	seen := make(map[string]bool)
	var out []flagDef
	for _, c := range cmds {
		for _, fd := range c.Flags {
			if seen[fd.Long] {
				continue
			}
			if fd.Type == flagEnum || fd.Type == flagDir || fd.Type == flagFile {
				seen[fd.Long] = true
				out = append(out, fd)
			}
		}
	}
	return out
}

func flagWords(flags []flagDef) []string {
	words := make([]string, 0, len(flags)*2)
	for _, fd := range flags {
		words = append(words, "--"+fd.Long)
		if fd.Short != "" {
			words = append(words, "-"+fd.Short)
		}
	}
	return words
}

func zshAction(fd flagDef) string {
	switch fd.Type {
	case flagEnum:
		return ":value:(" + strings.Join(fd.Values, " ") + ")"
	case flagDir:
		return ":directory:_files -/"
	case flagFile:
		return ":file:_files"
	case flagString, flagInt:
		return ":value:"
	default:
		return ""
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdbadge completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdbadge completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdbadge completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdbadge completion fish > ~/.config/fish/completions/mdbadge.fish")
}
