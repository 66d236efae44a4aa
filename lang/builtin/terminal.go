package builtin

import (
	"strings"
	"sync"

	"github.com/cabin-lang/cabin/lang/memory"
)

// firstPrint tracks whether terminal.print has ever run at compile time,
// process-wide: the first call prints a leading blank line (an
// original_source quirk, src/compile_time/builtin.rs).
var firstPrint = struct {
	sync.Mutex
	done bool
}{}

func init() {
	register("terminal.print", Entry{
		CompileTime: terminalPrint,
		ToC: func(parameterNames []string) (string, error) {
			if len(parameterNames) != 1 {
				return "", argError("terminal.print", 1, len(parameterNames))
			}
			return `printf("%s\n", ` + parameterNames[0] + `->internal_value);`, nil
		},
	})
	register("terminal.input", Entry{
		CompileTime: terminalInput,
		ToC: func(parameterNames []string) (string, error) {
			if len(parameterNames) != 1 {
				return "", argError("terminal.input", 1, len(parameterNames))
			}
			return "char* buffer = malloc(sizeof(char) * 256);\n" +
				"fgets(buffer, 256, stdin);\n" +
				"*" + parameterNames[0] + " = (Text_u) { .internal_value = buffer };", nil
		},
	})
}

func terminalPrint(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
	if len(args) != 1 {
		return 0, argError("terminal.print", 1, len(args))
	}
	text, err := toStringDispatch(ctx, args[0])
	if err != nil {
		return 0, err
	}

	firstPrint.Lock()
	leading := !firstPrint.done
	firstPrint.done = true
	firstPrint.Unlock()

	out := ctx.Stdout()
	if leading {
		out("\n\n" + text + "\n")
	} else {
		out(text + "\n")
	}
	return voidPointer(ctx), nil
}

func terminalInput(ctx EvalContext, args []memory.Pointer) (memory.Pointer, error) {
	if len(args) != 0 {
		return 0, argError("terminal.input", 0, len(args))
	}
	line, err := ctx.Stdin()()
	if err != nil {
		return 0, err
	}
	return storeText(ctx, strings.TrimRight(line, "\r\n")), nil
}
