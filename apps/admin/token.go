package main

import (
	"fmt"

	"github.com/trezcool/gradebook/apps/api/echo"
)

func (cli *commandLine) token(userID, email string) error {
	token, err := echoapi.GenerateToken(echoapi.NewClaims(userID, email, cli.conf), cli.conf.SecretKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, token)
	return nil
}
