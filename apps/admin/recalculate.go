package main

import (
	"context"
	"fmt"
)

func (cli *commandLine) recalculate(userID string) error {
	n, err := cli.settingsSvc.RecalculateAll(context.Background(), userID)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d grading period(s) recalculated\n", n)
	return nil
}
