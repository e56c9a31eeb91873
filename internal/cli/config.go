package cli

import (
	"fmt"

	"golang.org/x/mod/module"

	"github.com/stifskere/proofroute/internal/utils"
)

// Config carries everything the generator run needs from the command line.
type Config struct {
	// Directories lists the package directories to scan. An entry ending
	// in "..." is expanded recursively by the scanner.
	Directories []string

	// ModuleName overrides go.mod module resolution when non-empty.
	ModuleName string

	// Verbose raises diagnostics to the verbose level.
	Verbose bool

	// Quiet silences everything below the error level.
	Quiet bool
}

// Validate reports the first problem that would make the run meaningless.
func (c *Config) Validate() error {
	chain := utils.NewValidatorChain[[]string](
		utils.SliceNotEmpty[string]("directories"),
	)
	if err := chain.Validate(c.Directories); err != nil {
		return err
	}

	for i, dir := range c.Directories {
		if err := utils.NotEmpty(fmt.Sprintf("directories[%d]", i))(dir); err != nil {
			return err
		}
	}

	if c.ModuleName != "" {
		if err := module.CheckPath(c.ModuleName); err != nil {
			return utils.ValidationError{Field: "module", Value: c.ModuleName, Message: err.Error()}
		}
	}

	if c.Verbose && c.Quiet {
		return utils.ValidationError{Field: "verbose", Value: true, Message: "cannot be combined with quiet"}
	}

	return nil
}
