package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lambda-feedback/mirror/util/logging"
)

var (
	runCmdDescription = `The run command detects the execution environment from the
environment variables and starts mirror accordingly.

If the AWS_LAMBDA_RUNTIME_API environment variable is set,
mirror will start the AWS Lambda runtime handler, matching
the behaviour of the lambda command.

Otherwise, mirror will start the standalone http server.
	`
	runCmd = &cli.Command{
		Name:        "run",
		Usage:       "Detect execution environment and start mirror.",
		Description: runCmdDescription,
		Action:      runAction,
		Flags:       concatFlags(httpFlags, echoFlags, lambdaFlags),
	}
)

func runAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if isAWSLambda() {
		log.Info("detected AWS Lambda environment")
		return lambdaAction(ctx)
	}

	log.Info("detected standalone environment")
	return serveAction(ctx)
}

func isAWSLambda() bool {
	env, ok := os.LookupEnv("AWS_LAMBDA_RUNTIME_API")
	return ok && env != ""
}

func init() {
	rootApp.Commands = append(rootApp.Commands, runCmd)
}
