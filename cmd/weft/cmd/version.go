package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the weft CLI version and build time.",
		Usage: "weft version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
