package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/polyroots/internal/poly"
)

// GenerateCompletion writes a completion script for shell. Family letters
// complete as the first positional argument.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	families := poly.Families()
	switch shell {
	case "bash":
		return generateBashCompletion(out, families)
	case "zsh":
		return generateZshCompletion(out, families)
	case "fish":
		return generateFishCompletion(out, families)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, families)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func familyLetters(families []poly.Family) string {
	letters := make([]string, len(families))
	for i, f := range families {
		letters[i] = f.Letter
	}
	return strings.Join(letters, " ")
}

func generateBashCompletion(out io.Writer, families []poly.Family) error {
	script := `# Bash completion script for polyroots
# Add this to your ~/.bashrc or ~/.bash_completion

_polyroots_completions() {
    local cur prev opts families
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="--help -h --version -V -refine -print -prec -max-prec -timeout -parallel-threshold -v -json -quiet -q -output -o -no-color -server -port -interactive -batch -completion"
    families="%s"

    case "${prev}" in
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh fish powershell" -- "${cur}") )
            return 0
            ;;
        -output|-o|-batch)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
        -refine|-print)
            COMPREPLY=( $(compgen -W "10 20 50 100" -- "${cur}") )
            return 0
            ;;
        -prec|-max-prec)
            COMPREPLY=( $(compgen -W "32 64 128 256 1024 4096" -- "${cur}") )
            return 0
            ;;
        -timeout)
            COMPREPLY=( $(compgen -W "30s 1m 5m 30m 1h" -- "${cur}") )
            return 0
            ;;
        -port)
            COMPREPLY=( $(compgen -W "8080 3000 5000 9000" -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
    COMPREPLY=( $(compgen -W "${families}" -- "${cur}") )
}

complete -F _polyroots_completions polyroots
`
	_, err := fmt.Fprintf(out, script, familyLetters(families))
	return err
}

func generateZshCompletion(out io.Writer, families []poly.Family) error {
	var descs strings.Builder
	for _, f := range families {
		fmt.Fprintf(&descs, "        '%s:%s'\n", f.Letter, strings.ReplaceAll(f.Description, "'", ""))
	}

	script := `#compdef polyroots

# Zsh completion script for polyroots
# Add this to your ~/.zshrc or place in $fpath

_polyroots_families() {
    local -a families
    families=(
%s    )
    _describe 'family' families
}

_polyroots() {
    _arguments -s \
        '(-h --help)'{-h,--help}'[Show help message]' \
        '(-V --version)'{-V,--version}'[Show version information]' \
        '-refine[Certify roots to d decimal digits]:digits:(10 20 50 100)' \
        '-print[Print roots with d digits]:digits:(10 20 50 100)' \
        '-prec[Initial working precision in bits]:bits:(32 64 128 256)' \
        '-max-prec[Working precision ceiling in bits]:bits:(1024 4096 65536)' \
        '-timeout[Maximum execution time]:duration:(30s 1m 5m 30m 1h)' \
        '-parallel-threshold[Degree from which validation runs in parallel]:degree:' \
        '-v[Print every precision round]' \
        '-json[Output in JSON format]' \
        '(-q -quiet)'{-q,-quiet}'[Quiet mode for scripts]' \
        '(-o -output)'{-o,-output}'[Output file path]:file:_files' \
        '-no-color[Disable colored output]' \
        '-server[Start HTTP server mode]' \
        '-port[Server port]:port:(8080 3000 5000 9000)' \
        '-interactive[Start interactive REPL mode]' \
        '-batch[Run the jobs of a YAML file]:file:_files -g "*.y(a|)ml"' \
        '-completion[Generate completion script]:shell:(bash zsh fish powershell)' \
        '1:family:_polyroots_families' \
        '*:coefficient:'
}

_polyroots "$@"
`
	_, err := fmt.Fprintf(out, script, descs.String())
	return err
}

func generateFishCompletion(out io.Writer, families []poly.Family) error {
	var b strings.Builder
	b.WriteString(`# Fish completion script for polyroots
# Save to ~/.config/fish/completions/polyroots.fish

complete -c polyroots -f
complete -c polyroots -s h -l help -d 'Show help message'
complete -c polyroots -s V -l version -d 'Show version information'
complete -c polyroots -o refine -x -a '10 20 50 100' -d 'Certify roots to d decimal digits'
complete -c polyroots -o print -x -a '10 20 50 100' -d 'Print roots with d digits'
complete -c polyroots -o prec -x -a '32 64 128 256' -d 'Initial working precision in bits'
complete -c polyroots -o max-prec -x -a '1024 4096 65536' -d 'Working precision ceiling in bits'
complete -c polyroots -o timeout -x -a '30s 1m 5m 30m 1h' -d 'Maximum execution time'
complete -c polyroots -o parallel-threshold -x -d 'Degree from which validation runs in parallel'
complete -c polyroots -o v -d 'Print every precision round'
complete -c polyroots -o json -d 'Output in JSON format'
complete -c polyroots -s q -o quiet -d 'Quiet mode for scripts'
complete -c polyroots -s o -o output -r -F -d 'Output file path'
complete -c polyroots -o no-color -d 'Disable colored output'
complete -c polyroots -o server -d 'Start HTTP server mode'
complete -c polyroots -o port -x -a '8080 3000 5000 9000' -d 'Server port'
complete -c polyroots -o interactive -d 'Start interactive REPL mode'
complete -c polyroots -o batch -r -F -d 'Run the jobs of a YAML file'
complete -c polyroots -o completion -x -a 'bash zsh fish powershell' -d 'Generate completion script'
`)
	for _, f := range families {
		fmt.Fprintf(&b, "complete -c polyroots -n '__fish_is_first_arg' -a %s -d '%s'\n",
			f.Letter, strings.ReplaceAll(f.Description, "'", ""))
	}
	_, err := io.WriteString(out, b.String())
	return err
}

func generatePowerShellCompletion(out io.Writer, families []poly.Family) error {
	quoted := make([]string, len(families))
	for i, f := range families {
		quoted[i] = "'" + f.Letter + "'"
	}

	script := `# PowerShell completion script for polyroots
# Add this to your PowerShell profile

Register-ArgumentCompleter -Native -CommandName polyroots -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
        '-h', '--help', '-V', '--version', '-refine', '-print', '-prec', '-max-prec',
        '-timeout', '-parallel-threshold', '-v', '-json', '-q', '-quiet', '-o', '-output',
        '-no-color', '-server', '-port', '-interactive', '-batch', '-completion'
    )
    $families = @(%s)

    $candidates = if ($wordToComplete -like '-*') { $options } else { $families }
    $candidates | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
    }
}
`
	_, err := fmt.Fprintf(out, script, strings.Join(quoted, ", "))
	return err
}
