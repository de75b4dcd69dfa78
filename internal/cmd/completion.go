package cmd

import (
	"fmt"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
}

func (c *CompletionCmd) Run() error {
	switch c.Shell {
	case "bash":
		return c.generateBash()
	case "zsh":
		return c.generateZsh()
	case "fish":
		return c.generateFish()
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", c.Shell)
	}
}

func (c *CompletionCmd) generateBash() error {
	script := `# bash completion for fbxbatch

_fbxbatch_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="export plan run presets version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for export and plan commands
    if [[ ${COMP_WORDS[1]} == "export" || ${COMP_WORDS[1]} == "plan" ]]; then
        case "${prev}" in
            -o|--out)
                COMPREPLY=( $(compgen -d -- ${cur}) )
                return 0
                ;;
            -s|--select|--prefix|--filename)
                return 0
                ;;
            --axis)
                COMPREPLY=( $(compgen -W "blender maya unity unreal" -- ${cur}) )
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="-s --select --prefix --index --no-index --per-object --no-per-object -o --out --filename --axis -y --yes -h --help"
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(gltf|glb)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for run command
    if [[ ${COMP_WORDS[1]} == "run" ]]; then
        if [[ ${cur} == -* ]]; then
            opts="-y --yes -h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
        fi
        return 0
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _fbxbatch_completions fbxbatch
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) generateZsh() error {
	script := `#compdef fbxbatch

_fbxbatch() {
    local -a commands
    commands=(
        'export:Rename the selected objects and export them to FBX'
        'plan:Show what an export would rename and write'
        'run:Run the jobs of a YAML job file'
        'presets:List the engine axis presets'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a export_opts
    export_opts=(
        '(-s --select)'{-s,--select}'[Glob patterns choosing the objects]:pattern:'
        '--prefix[Prefix for the renamed objects]:prefix:'
        '--index[Append a numeric index to each name]'
        '--no-index[Keep names without a numeric index]'
        '--per-object[Write one file per object]'
        '--no-per-object[Write a single combined file]'
        '(-o --out)'{-o,--out}'[Output directory]:directory:_directories'
        '--filename[Filename for the combined file]:filename:'
        '--axis[Engine axis preset]:preset:(blender maya unity unreal)'
        '(-y --yes)'{-y,--yes}'[Skip the confirmation step]'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:scene file:_files -g "*.{gltf,glb}"'
    )

    local -a run_opts
    run_opts=(
        '(-y --yes)'{-y,--yes}'[Skip the confirmation steps]'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:job file:_files -g "*.{yaml,yml}"'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                export|plan)
                    _arguments $export_opts
                    ;;
                run)
                    _arguments $run_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                presets|version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_fbxbatch
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) generateFish() error {
	script := `# fish completion for fbxbatch

# Main commands
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "export" -d "Rename the selected objects and export them to FBX"
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "plan" -d "Show what an export would rename and write"
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "run" -d "Run the jobs of a YAML job file"
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "presets" -d "List the engine axis presets"
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c fbxbatch -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# export and plan command options
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -s s -l select -d "Glob patterns choosing the objects" -r
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -l prefix -d "Prefix for the renamed objects" -r
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -l no-index -d "Keep names without a numeric index"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -l no-per-object -d "Write a single combined file"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -s o -l out -d "Output directory" -r -a "(__fish_complete_directories)"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -l filename -d "Filename for the combined file" -r
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export plan" -l axis -d "Engine axis preset" -r -a "blender maya unity unreal"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from export" -s y -l yes -d "Skip the confirmation step"
complete -c fbxbatch -n "__fish_seen_subcommand_from export plan" -a "(__fish_complete_suffix .gltf)" -d "glTF scene"
complete -c fbxbatch -n "__fish_seen_subcommand_from export plan" -a "(__fish_complete_suffix .glb)" -d "glTF binary scene"

# run command options
complete -c fbxbatch -f -n "__fish_seen_subcommand_from run" -s y -l yes -d "Skip the confirmation steps"
complete -c fbxbatch -n "__fish_seen_subcommand_from run" -a "(__fish_complete_suffix .yaml)" -d "YAML job file"
complete -c fbxbatch -n "__fish_seen_subcommand_from run" -a "(__fish_complete_suffix .yml)" -d "YAML job file"

# completion command options
complete -c fbxbatch -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c fbxbatch -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"

# version command options
complete -c fbxbatch -f -n "__fish_seen_subcommand_from version" -s h -l help -d "Show help"
`
	fmt.Print(script)
	return nil
}

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for fbxbatch.

Examples:
  # Bash
  fbxbatch completion bash > /etc/bash_completion.d/fbxbatch
  # or
  fbxbatch completion bash > ~/.local/share/bash-completion/completions/fbxbatch

  # Zsh
  fbxbatch completion zsh > ~/.zsh/completion/_fbxbatch
  # or add to .zshrc:
  autoload -U compinit && compinit

  # Fish
  fbxbatch completion fish > ~/.config/fish/completions/fbxbatch.fish
`
}
