package bmeta

import "fmt"

const unsetBuildMeta = "N/A"

// Print распечатывает версию, дату и коммит сборки. Пустые значения
// (сборка без ldflags) заменяются на N/A.
func Print(version, date, commit string) {
	fmt.Printf("Build version: %s\n", orUnset(version)) //nolint:forbidigo
	fmt.Printf("Build date: %s\n", orUnset(date))       //nolint:forbidigo
	fmt.Printf("Build commit: %s\n", orUnset(commit))   //nolint:forbidigo
}

func orUnset(value string) string {
	if value == "" {
		return unsetBuildMeta
	}
	return value
}
