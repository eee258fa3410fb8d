package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sheikh-saqib/console-bank-ledger/internal/ledger"
	"github.com/sheikh-saqib/console-bank-ledger/internal/models"
)

const menu = `
1: Check Balance
2: Deposit
3: Withdraw
4: Show All Transactions
5: Save Transactions
6: Load Transactions
7: Delete Transactions by Date
0: Exit`

// Console is the interactive menu over a single account.
type Console struct {
	account *ledger.Account
	in      *bufio.Reader
	out     io.Writer
	timeout time.Duration
}

// New returns a Console reading choices from in and writing to out. A
// positive timeout bounds every storage call.
func New(account *ledger.Account, in io.Reader, out io.Writer, timeout time.Duration) *Console {
	return &Console{
		account: account,
		in:      bufio.NewReader(in),
		out:     out,
		timeout: timeout,
	}
}

// Run shows the menu until the user picks 0 or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.println(menu)
		c.print("Enter your choice: ")

		line, err := c.readLine()
		if err != nil {
			return c.endOfInput(err)
		}

		var choice byte
		if line != "" {
			choice = line[0]
		}

		switch choice {
		case '1':
			c.println(fmt.Sprintf("Balance: %d", c.account.Balance()))
		case '2':
			amount, err := c.readInt("Enter amount to deposit: ")
			if err != nil {
				return c.endOfInput(err)
			}
			c.deposit(ctx, amount)
		case '3':
			amount, err := c.readInt("Enter amount to withdraw: ")
			if err != nil {
				return c.endOfInput(err)
			}
			c.withdraw(ctx, amount)
		case '4':
			c.showTransactions()
		case '5':
			c.save(ctx)
		case '6':
			c.load(ctx)
		case '7':
			c.print("Enter the date of transactions to delete (YYYY-MM-DD): ")
			input, err := c.readLine()
			if err != nil {
				return c.endOfInput(err)
			}
			c.deleteByDate(ctx, input)
		case '0':
			c.println("Exiting...")
			return nil
		default:
			c.println("Invalid choice. Please try again.")
		}
	}
}

func (c *Console) deposit(ctx context.Context, amount int64) {
	if err := c.account.Deposit(ctx, amount); err != nil {
		c.println("Invalid deposit amount.")
	}
}

func (c *Console) withdraw(ctx context.Context, amount int64) {
	if err := c.account.Withdraw(ctx, amount); err != nil {
		c.println("Insufficient funds or invalid amount.")
	}
}

func (c *Console) showTransactions() {
	for _, tx := range c.account.Transactions() {
		c.println(tx.String())
	}
}

func (c *Console) save(ctx context.Context) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	if _, err := c.account.SaveTransactions(ctx); err != nil {
		c.println("Error saving transactions: " + err.Error())
		return
	}
	c.println("Transactions saved to the database.")
}

func (c *Console) load(ctx context.Context) {
	ctx, cancel := c.opContext(ctx)
	defer cancel()

	if _, err := c.account.LoadTransactions(ctx); err != nil {
		c.println("Error loading transactions: " + err.Error())
		return
	}
	c.println("Transactions loaded from the database.")
}

func (c *Console) deleteByDate(ctx context.Context, input string) {
	date, err := models.ParseDate(input)
	if err != nil {
		c.println("Invalid date format. Please use YYYY-MM-DD.")
		return
	}

	ctx, cancel := c.opContext(ctx)
	defer cancel()

	deleted, err := c.account.DeleteTransactionsByDate(ctx, date)
	switch {
	case errors.Is(err, ledger.ErrDeleteUnsupported):
		c.println("Transaction deletion is not supported for the current manager.")
	case err != nil:
		c.println("Error deleting transactions: " + err.Error())
	default:
		c.println(fmt.Sprintf("%d transaction(s) deleted for date %s.", deleted, date.Format(models.DateLayout)))
	}
}

// readInt prompts once and keeps reading until a line starts with an integer.
// Blank lines are skipped.
func (c *Console) readInt(prompt string) (int64, error) {
	c.print(prompt)
	for {
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseInt(fields[0], 10, 64)
		if err == nil {
			return v, nil
		}
		c.println("Invalid input. Please enter a valid integer.")
	}
}

// readLine returns the next line without surrounding whitespace. Lines have
// no length limit. A final line without a newline is returned before io.EOF.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// endOfInput turns a clean EOF into a normal exit.
func (c *Console) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		c.println("")
		c.println("Exiting...")
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

func (c *Console) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *Console) print(s string) {
	fmt.Fprint(c.out, s)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
