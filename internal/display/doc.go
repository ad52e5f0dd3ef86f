// Package display renders search output for the terminal.
//
// A Printer implements search.Reporter and writes the startup banner, one block per match,
// a separator after every matched file and the closing summary:
//
//	printer := display.NewPrinter(os.Stdout, display.ColorAuto)
//	printer.Banner(display.Banner{Expression: "ERROR", Root: "logs", ContextLines: 2})
//	summary, err := search.NewEngine(printer, log).Run(req)
//	printer.Summary(summary)
//
// Warnings about adjusted arguments or degraded features go through Warning:
//
//	display.Warning{
//	    Title:      "Context lines adjusted",
//	    Message:    "requested 9, using 5",
//	    Suggestion: "Use a value between 0 and 5",
//	}.Display(os.Stderr)
//
// Colour is decided once per writer from a ColorMode. ColorAuto enables it only when the
// writer is a terminal and NO_COLOR is unset.
package display
