package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/vending-machine/internal/format"
	"github.com/sheikh-saqib/vending-machine/internal/vending"
)

const helpText = `Commands:
  list             show products
  insert <amount>  insert money
  select <code>    buy a product
  cancel           refund the balance
  balance          show the balance
  history          show completed purchases
  last             show the last purchase
  quit             exit`

// console is a line-oriented driver around a Machine.
type console struct {
	machine *vending.Machine
	in      io.Reader
	out     io.Writer
}

func newConsole(machine *vending.Machine, in io.Reader, out io.Writer) *console {
	return &console{machine: machine, in: in, out: out}
}

// Run reads commands until quit, EOF or ctx is cancelled.
func (c *console) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	fmt.Fprintln(c.out, c.machine.DisplayProducts())
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := c.execute(ctx, line); quit {
				return nil
			}
		}
	}
}

func (c *console) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprintln(c.out, helpText)
	case "list":
		fmt.Fprintln(c.out, c.machine.DisplayProducts())
	case "balance":
		fmt.Fprintln(c.out, "Balance:", format.Money(c.machine.Balance()))
	case "insert":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: insert <amount>")
			return false
		}
		amount, err := decimal.NewFromString(fields[1])
		if err != nil {
			fmt.Fprintf(c.out, "invalid amount %q\n", fields[1])
			return false
		}
		fmt.Fprintln(c.out, "Balance:", format.Money(c.machine.Insert(amount)))
	case "select":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: select <code>")
			return false
		}
		result, err := c.machine.SelectProduct(ctx, strings.ToUpper(fields[1]))
		if err != nil {
			fmt.Fprintln(c.out, "purchase failed:", err)
			return false
		}
		fmt.Fprintln(c.out, result)
	case "cancel":
		fmt.Fprintln(c.out, c.machine.Cancel(ctx))
	case "history":
		history, err := c.machine.History(ctx)
		if err != nil {
			fmt.Fprintln(c.out, "history unavailable:", err)
			return false
		}
		if len(history) == 0 {
			fmt.Fprintln(c.out, "No transactions yet")
			return false
		}
		for _, tx := range history {
			fmt.Fprintf(c.out, "%s %s\n", tx.CreatedAt.Format("15:04:05"), format.TransactionDetails(tx))
		}
	case "last":
		summary, err := c.machine.LastTransactionSummary(ctx)
		if err != nil {
			fmt.Fprintln(c.out, "history unavailable:", err)
			return false
		}
		if summary == "" {
			summary = "No transactions yet"
		}
		fmt.Fprintln(c.out, summary)
	default:
		fmt.Fprintf(c.out, "unknown command %q, type help\n", fields[0])
	}
	return false
}
