package main

import (
	"errors"
	"fmt"
)

var errMissingName = errors.New("name is required for create command")

func unknownCommandError(command string) error {
	return fmt.Errorf("unknown command: %s", command)
}
