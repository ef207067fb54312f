// Package output provides styled terminal output for the optable CLI.
//
// # Usage
//
//	p := output.New(os.Stdout)
//	p.Success("Loaded 6 items")
//	p.Info("Next steps:")
//	p.Step("optable show ethport.yml EthPortTable")
//	p.Error("item \"PortView\" references undefined item \"QueueTable\"")
//
// Styling uses lipgloss and is only applied when the writer is a terminal;
// redirected output is plain text.
//
//   - Success: ✔ green bold
//   - Error: ✘ red bold
//   - Info: cyan
//   - Step: indented gray
//   - Verbose: gray, only when enabled
package output
