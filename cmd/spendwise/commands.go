package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"spendwise/internal/core"
	"spendwise/internal/goal"
	"spendwise/internal/ledger"
	"spendwise/internal/services"
	"spendwise/internal/split"
	"spendwise/internal/voice"
)

var errUsage = errors.New("usage error")

const inputDateLayout = "2006-01-02"

type app struct {
	tracker *services.Tracker
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// userMessage maps known sentinels to the text shown on the terminal.
func userMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "enter a valid amount greater than zero"
	case errors.Is(err, core.ErrEmptyDescription):
		return "description is required"
	case errors.Is(err, core.ErrInvalidType):
		return "type must be income or expense"
	case errors.Is(err, core.ErrEmptyName):
		return "name is required"
	case errors.Is(err, core.ErrEmptyPeople):
		return "enter at least one person"
	case errors.Is(err, split.ErrInvalidTotal), errors.Is(err, split.ErrNoParticipants):
		return "enter total amount and at least one \"Name, amountPaid\" line"
	case errors.Is(err, split.ErrNoItems):
		return "add some items first"
	case errors.Is(err, voice.ErrNoAmount):
		return "no amount detected, try again"
	case errors.Is(err, voice.ErrAmountNotUnderstood):
		return "amount not understood, try again"
	case errors.Is(err, voice.ErrRecognitionUnsupported):
		return "speech recognition is not available"
	default:
		return err.Error()
	}
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return a.add(ctx, rest)
	case "delete":
		return a.delete(ctx, rest)
	case "list":
		return a.list(rest)
	case "summary":
		return a.summary()
	case "upcoming":
		return a.upcoming(ctx, rest)
	case "goal":
		return a.goal(rest)
	case "settle":
		return a.settle(rest)
	case "split":
		return a.split(ctx, rest)
	case "challenge":
		return a.challenge(ctx, rest)
	case "voice":
		return a.voice(ctx, rest)
	default:
		return usagef("unknown command %q", cmd)
	}
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usagef("%s: %v", fs.Name(), err)
	}
	return nil
}

func oneArg(name string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usagef("%s needs exactly one id", name)
	}
	return args[0], nil
}

func (a *app) add(ctx context.Context, args []string) error {
	fs := a.flags("add")
	typ := fs.String("type", "expense", "income or expense")
	amount := fs.String("amount", "", "amount, dot or comma decimals")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "", "category")
	note := fs.String("note", "", "optional note")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	t, err := core.ParseTransactionType(*typ)
	if err != nil {
		return err
	}
	amt, err := core.ParseAmount(*amount)
	if err != nil {
		return err
	}

	tx, err := a.tracker.AddTransaction(ctx, services.NewTransaction{
		Type:        t,
		Description: *desc,
		Amount:      amt,
		Category:    *category,
		Note:        *note,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s %s %s (%s)\n", tx.Type, core.FormatCurrency(tx.Amount), tx.Description, tx.ID)
	return nil
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := oneArg("delete", args)
	if err != nil {
		return err
	}
	if err := a.tracker.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %s\n", id)
	return nil
}

func (a *app) list(args []string) error {
	fs := a.flags("list")
	typ := fs.String("type", "all", "all, income or expense")
	category := fs.String("category", "all", "category or all")
	categories := fs.Bool("categories", false, "print the distinct categories instead")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *categories {
		names := a.tracker.Categories()
		if len(names) == 0 {
			fmt.Fprintln(a.stdout, "No categories yet.")
			return nil
		}
		for _, name := range names {
			fmt.Fprintln(a.stdout, name)
		}
		return nil
	}

	txs := a.tracker.Transactions(ledger.Filter{Type: *typ, Category: *category})
	if len(txs) == 0 {
		fmt.Fprintln(a.stdout, "No transactions to show for selected filters.")
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
	for _, t := range txs {
		sign := "-"
		if t.Type == core.Income {
			sign = "+"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%s\t%s\t%s\n",
			t.ID, core.FormatDate(t.Date), strings.ToUpper(t.Type.String()),
			sign, core.FormatCurrency(t.Amount), t.Category, t.Description)
	}
	return tw.Flush()
}

func (a *app) summary() error {
	s := a.tracker.Summary()

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Balance:\t%s\n", core.FormatCurrency(s.Balance))
	fmt.Fprintf(tw, "Income:\t%s\n", core.FormatCurrency(s.Income))
	fmt.Fprintf(tw, "Expense:\t%s\n", core.FormatCurrency(s.Expense))
	if s.Survival.OK {
		fmt.Fprintf(tw, "Survival:\t%d days (avg daily spend %s)\n", s.Survival.Days, core.FormatCurrency(s.Survival.AvgDaily))
	} else {
		fmt.Fprintf(tw, "Survival:\t– (Need more data to estimate.)\n")
	}
	if s.HasScore {
		fmt.Fprintf(tw, "Sustainability:\t%s/100\n", strconv.FormatFloat(s.Score, 'f', -1, 64))
	} else {
		fmt.Fprintf(tw, "Sustainability:\t–\n")
	}
	fmt.Fprintf(tw, "\t%s\n", s.Verdict)
	if next, ok := a.tracker.NextUpcoming(); ok {
		fmt.Fprintf(tw, "Next upcoming:\t%s • %s • %s\n", next.Name, core.FormatCurrency(next.Amount), core.FormatDate(next.Date))
	}
	return tw.Flush()
}

func (a *app) upcoming(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("upcoming needs add, list or remove")
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		fs := a.flags("upcoming add")
		name := fs.String("name", "", "what the expense is")
		amount := fs.String("amount", "", "amount")
		date := fs.String("date", "", "due date, YYYY-MM-DD")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		amt, err := core.ParseAmount(*amount)
		if err != nil {
			return err
		}
		due, err := time.ParseInLocation(inputDateLayout, *date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, use YYYY-MM-DD", *date)
		}
		u, err := a.tracker.AddUpcoming(ctx, *name, amt, due)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Planned %s • %s • %s (%s)\n", u.Name, core.FormatCurrency(u.Amount), core.FormatDate(u.Date), u.ID)
		return nil
	case "list":
		items := a.tracker.Upcoming()
		if len(items) == 0 {
			fmt.Fprintln(a.stdout, "No upcoming expenses.")
			return nil
		}
		tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATE\tAMOUNT\tNAME")
		for _, u := range items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.ID, core.FormatDate(u.Date), core.FormatCurrency(u.Amount), u.Name)
		}
		fmt.Fprintf(tw, "\t\t%s\tTotal\n", core.FormatCurrency(a.tracker.UpcomingTotal()))
		return tw.Flush()
	case "remove":
		id, err := oneArg("upcoming remove", rest)
		if err != nil {
			return err
		}
		if err := a.tracker.RemoveUpcoming(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Removed %s\n", id)
		return nil
	default:
		return usagef("unknown upcoming command %q", sub)
	}
}

func (a *app) goal(args []string) error {
	fs := a.flags("goal")
	name := fs.String("name", "", "what you are saving for")
	cost := fs.String("cost", "", "total cost")
	monthly := fs.String("monthly", "", "amount saved each month")
	saved := fs.String("saved", "0", "amount already saved")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	c, err := core.ParseAmount(*cost)
	if err != nil {
		return fmt.Errorf("cost: %w", goal.ErrInvalidCost)
	}
	m, err := core.ParseAmount(*monthly)
	if err != nil {
		return fmt.Errorf("monthly: %w", goal.ErrInvalidSaving)
	}
	s, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(*saved), ",", "."))
	if err != nil {
		return fmt.Errorf("saved: %w", goal.ErrInvalidSaved)
	}

	p, err := a.tracker.ProjectGoal(goal.Goal{Name: *name, Cost: c, MonthlySaving: m, AlreadySaved: s})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "If you save %s every month, you can afford %q in about %d month(s), around %s.\n",
		core.CurrencySymbol+m.StringFixed(0), p.Goal.Name, p.MonthsNeeded, core.FormatDate(p.TargetDate))
	fmt.Fprintf(a.stdout, "Progress: %s%% (remaining %s)\n", p.ProgressPct.StringFixed(0), core.FormatCurrency(p.Remaining))
	return nil
}

func (a *app) settle(args []string) error {
	fs := a.flags("settle")
	total := fs.String("total", "", "bill total")
	upi := fs.String("upi", "", "receiver UPI id for payment links")
	note := fs.String("note", "Room settlement", "note on payment links")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	t, err := core.ParseAmount(*total)
	if err != nil {
		return fmt.Errorf("total: %w", split.ErrInvalidTotal)
	}
	lines, err := io.ReadAll(a.stdin)
	if err != nil {
		return fmt.Errorf("read paid lines: %w", err)
	}

	res, err := a.tracker.SettleGroup(t, string(lines))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Fair share per person: %s\n", core.FormatCurrency(res.FairShare))
	for _, p := range res.People {
		switch p.Status {
		case split.Settled:
			fmt.Fprintf(a.stdout, "%s is settled (±%s1).\n", p.Name, core.CurrencySymbol)
		case split.Receives:
			fmt.Fprintf(a.stdout, "%s should receive %s.\n", p.Name, core.FormatCurrency(p.Amount))
		case split.Pays:
			fmt.Fprintf(a.stdout, "%s should pay %s.\n", p.Name, core.FormatCurrency(p.Amount))
			if *upi != "" {
				fmt.Fprintf(a.stdout, "  %s\n", split.UPILink(*upi, p.Amount, *note))
			}
		}
	}
	return nil
}

func (a *app) split(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("split needs add, list, run or clear")
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "add":
		fs := a.flags("split add")
		name := fs.String("name", "", "item name")
		price := fs.String("price", "", "item price")
		people := fs.String("people", "", "comma separated names")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		p, err := core.ParseAmount(*price)
		if err != nil {
			return err
		}
		item, err := a.tracker.AddSplitItem(ctx, *name, p, core.ParsePeople(*people))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s • %s • [%s]\n", item.Name, core.FormatCurrency(item.Price), strings.Join(item.People, ", "))
		return nil
	case "list":
		items := a.tracker.SplitItems()
		if len(items) == 0 {
			fmt.Fprintln(a.stdout, "No items yet.")
			return nil
		}
		for _, item := range items {
			fmt.Fprintf(a.stdout, "%s • %s • [%s]\n", item.Name, core.FormatCurrency(item.Price), strings.Join(item.People, ", "))
		}
		return nil
	case "run":
		shares, err := a.tracker.SplitShares()
		if err != nil {
			return err
		}
		for _, s := range shares {
			fmt.Fprintf(a.stdout, "%s should pay %s.\n", s.Name, core.FormatCurrency(s.Amount))
		}
		return nil
	case "clear":
		if err := a.tracker.ClearSplitItems(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Cleared items.")
		return nil
	default:
		return usagef("unknown split command %q", sub)
	}
}

func (a *app) challenge(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usagef("challenge needs list or done")
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tPROGRESS\tSTATUS")
		for _, c := range a.tracker.Challenges() {
			status := "active"
			if c.Done() {
				status = "done"
			}
			fmt.Fprintf(tw, "%s\t%s\t%d/%d days (%d%%)\t%s\n", c.ID, c.Title, c.CompletedDays, c.TotalDays, c.Percent(), status)
		}
		return tw.Flush()
	case "done":
		id, err := oneArg("challenge done", rest)
		if err != nil {
			return err
		}
		c, err := a.tracker.AdvanceChallenge(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s: %d/%d days (%d%%)\n", c.Title, c.CompletedDays, c.TotalDays, c.Percent())
		return nil
	default:
		return usagef("unknown challenge command %q", sub)
	}
}

// voice reads one transcript from stdin, shows the parsed draft and adds it
// only when -yes is given.
func (a *app) voice(ctx context.Context, args []string) error {
	fs := a.flags("voice")
	category := fs.String("category", "Other", "category for the new transaction")
	confirm := fs.Bool("yes", false, "add the parsed transaction")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	draft, transcript, err := a.tracker.CaptureVoice(ctx, voice.NewReaderRecognizer(a.stdin))
	if err != nil {
		if transcript != "" {
			fmt.Fprintf(a.stdout, "Heard: %q\n", transcript)
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Heard: %q\n", transcript)
	fmt.Fprintf(a.stdout, "Type: %s\nAmount: %s\nDescription: %s\n", draft.Type, core.FormatCurrency(draft.Amount), draft.Description)
	if !*confirm {
		fmt.Fprintln(a.stdout, "Run again with -yes to add it.")
		return nil
	}

	tx, err := a.tracker.ConfirmDraft(ctx, draft, *category)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s %s %s (%s)\n", tx.Type, core.FormatCurrency(tx.Amount), tx.Description, tx.ID)
	return nil
}
