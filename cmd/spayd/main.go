// Command spayd generates Czech QR payment codes.
//
// It builds a Short Payment Descriptor from its flags, or parses one
// given with -P, and writes it as a QR code image, as a QR code drawn
// with text characters, or as text.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/unixdj/spayd"
	"github.com/unixdj/spayd/money"
	"github.com/unixdj/spayd/qrcode"
)

// errUsage is returned after the usage message has been printed.
var errUsage = errors.New("usage")

// Lengths of free text fields in bytes.
const (
	maxMessage   = 60
	maxRecipient = 35
)

var formats = []string{
	"png", "svg", "webp", "pbm", "utf8", "utf8i", "ascii", "asciii", "text",
}

type options struct {
	cfgFile   string
	account   string
	alt       []string
	amount    string
	currency  string
	due       string
	msg       string
	recipient string
	vs, ss    string
	ks, ref   string
	instant   bool
	email     string
	phone     string
	invoice   string
	issued    string
	sellerID  string
	sellerVAT string
	buyerID   string
	buyerVAT  string
	upper     bool
	noCRC     bool
	parse     bool
	fn        string
	size      int
	margin    int
	level     string
	backend   string
	format    string
	verbose   bool
	logFormat string
	help      bool
	version   bool
}

// A command is one invocation of spayd.
type command struct {
	set    *getopt.Set
	o      options
	getenv func(string) string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	tty    bool
	now    func() time.Time
}

func newCommand(getenv func(string) string, stdin io.Reader, stdout, stderr io.Writer, tty bool) *command {
	c := &command{
		set:    getopt.New(),
		getenv: getenv,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		tty:    tty,
		now:    time.Now,
	}
	c.o.logFormat = "text"
	s, o := c.set, &c.o
	s.SetParameters("[descriptor ...]")
	s.FlagLong(&o.help, "help", 'h', "show this help")
	s.FlagLong(&o.version, "version", 'V', "print version and copyright")
	s.FlagLong(&o.cfgFile, "config", 'C', "read defaults from YAML file", "file")
	s.FlagLong(&o.account, "account", 'a', "payee account; "+
		"default from $SPAYD_ACCOUNT", "IBAN[+BIC]")
	s.FlagLong(&o.alt, "alt-account", 'A',
		"alternative account; may be repeated", "IBAN[+BIC]")
	s.FlagLong(&o.amount, "amount", 'm', "amount, e.g. 799.50", "amount")
	s.FlagLong(&o.currency, "currency", 'c', "ISO 4217 currency code "+
		"[CZK]; default from $SPAYD_CURRENCY", "code")
	s.FlagLong(&o.due, "due", 'd', "due date", "YYYY-MM-DD")
	s.FlagLong(&o.msg, "message", 'M', "message for the payee, "+
		"truncated to 60 bytes", "text")
	s.FlagLong(&o.recipient, "recipient", 'n', "payee name, truncated "+
		"to 35 bytes; default from $SPAYD_RECIPIENT", "name")
	s.FlagLong(&o.vs, "vs", 'x', "variable symbol", "number")
	s.FlagLong(&o.ss, "ss", 0, "specific symbol", "number")
	s.FlagLong(&o.ks, "ks", 0, "constant symbol", "number")
	s.FlagLong(&o.ref, "reference", 'r', "payer's reference", "number")
	s.FlagLong(&o.instant, "instant", 'i', "request instant payment")
	s.FlagLong(&o.email, "notify-email", 0,
		"ask the bank to notify the payee by e-mail", "address").
		SetGroup("notify")
	s.FlagLong(&o.phone, "notify-phone", 0,
		"ask the bank to notify the payee by phone", "number").
		SetGroup("notify")
	s.FlagLong(&o.invoice, "invoice", 'I', "embed an invoice with this "+
		"ID; requires -m", "id")
	s.FlagLong(&o.issued, "issued", 0, "invoice issue date [today]",
		"YYYY-MM-DD")
	s.FlagLong(&o.sellerID, "seller-id", 0, "seller identification number", "id")
	s.FlagLong(&o.sellerVAT, "seller-vat", 0, "seller VAT number", "id")
	s.FlagLong(&o.buyerID, "buyer-id", 0, "buyer identification number", "id")
	s.FlagLong(&o.buyerVAT, "buyer-vat", 0, "buyer VAT number", "id")
	s.FlagLong(&o.upper, "upper", 'U', "convert message and name to upper case")
	s.FlagLong(&o.noCRC, "no-crc", 'N', "omit the CRC32 field")
	s.FlagLong(&o.parse, "parse", 'P', "parse and verify the descriptor "+
		"given as arguments or on standard input instead of building one")
	s.FlagLong(&o.fn, "output", 'o', `output file, or "-" for standard output`,
		"file")
	s.FlagLong(&o.size, "size", 's', "code size in pixels [300]", "pixels")
	s.FlagLong(&o.margin, "margin", 'g', "margin in pixels [0]", "pixels")
	s.EnumLong("level", 'l', levels, "",
		"error correction level, lowest to highest [l]", "l|m|q|h")
	s.EnumLong("backend", 'b', []string{"go-qrcode", "rsc"}, "",
		"QR encoder [go-qrcode]", "name")
	s.EnumLong("type", 't', formats, "", "output format, one of: "+
		strings.Join(formats, ", ")+`; types with "i" appended have `+
		`colours inverted; if no -o is given and standard output is `+
		`a TTY, default is utf8, otherwise png`, "type")
	s.FlagLong(&o.verbose, "verbose", 'v', "log debugging information")
	s.EnumLong("log-format", 0, []string{"text", "json"}, "text",
		"log format", "text|json")
	return c
}

func (c *command) printUsage(w io.Writer) {
	fmt.Fprintln(w, "Short Payment Descriptor QR code generator")
	c.set.PrintUsage(w)
	fmt.Fprint(w, `
With -P and no descriptor given, it is read from standard input and
the final newline is stripped.  Environment variables are also read
from the file .env.
`)
}

func (c *command) usage(err error) error {
	fmt.Fprintln(c.stderr, err)
	c.printUsage(c.stderr)
	return errUsage
}

// run parses args and writes the output.
func (c *command) run(args []string) error {
	s, o := c.set, &c.o
	if err := s.Getopt(args, nil); err != nil {
		return c.usage(err)
	}
	if o.help {
		c.printUsage(c.stdout)
		return nil
	}
	if o.version {
		fmt.Fprintln(c.stdout, `spayd version 1.0.0
Copyright (c) 2025 Vadim Vygonets`)
		return nil
	}
	o.level = s.GetValue("level")
	o.backend = s.GetValue("backend")
	o.format = s.GetValue("type")
	o.logFormat = s.GetValue("log-format")
	if !o.parse && s.NArgs() != 0 {
		return c.usage(fmt.Errorf("unexpected argument %q", s.Arg(0)))
	}

	level := "info"
	if o.verbose {
		level = "debug"
	}
	logger := initLogger(c.stderr, logConfig{Level: level, Format: o.logFormat})

	cfg, err := c.config()
	if err != nil {
		return err
	}

	var d spayd.Descriptor
	if o.parse {
		if d, err = c.parseDescriptor(); err != nil {
			return err
		}
		// The account and checksum come from the descriptor.
		cfg.Account = d.Account().String()
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !o.parse {
		if d, err = c.buildDescriptor(cfg); err != nil {
			return err
		}
	}
	text, err := d.Encode()
	if err != nil {
		return err
	}
	logger.Debug("descriptor", "text", text, "fields", len(d.Fields()))

	if o.format == "" {
		if !s.IsSet("output") && c.tty {
			o.format = "utf8"
		} else {
			o.format = "png"
		}
	}
	if o.fn == "-" {
		o.fn = ""
	}
	lev, _ := parseLevel(cfg.Level)
	matrix := backends[cfg.Backend]
	logger.Debug("output", "type", o.format, "file", o.fn,
		"level", lev, "backend", cfg.Backend)

	switch o.format {
	case "text":
		return c.write(func(w io.Writer) error {
			_, err := fmt.Fprintln(w, text)
			return err
		})
	case "utf8", "utf8i", "ascii", "asciii":
		m, err := matrix(text, lev)
		if err != nil {
			return fmt.Errorf("%w: %w", qrcode.ErrCouldNotGenerateQrCode, err)
		}
		draw, rev := utf8, false
		if strings.HasPrefix(o.format, "ascii") {
			draw = ascii
		}
		if o.format == "utf8i" || o.format == "asciii" {
			rev = true
		}
		return c.write(func(w io.Writer) error { return draw(w, m, rev) })
	}
	f, err := qrcode.ParseFormat(o.format)
	if err != nil {
		return err
	}
	r := qrcode.New(text,
		qrcode.WithFormat(f, qrcode.WithLevel(lev), qrcode.WithMatrix(matrix)),
		qrcode.WithLogger(logger))
	if o.fn != "" {
		return r.WriteFile(o.fn, cfg.Size, cfg.Margin)
	}
	data, err := r.Content(cfg.Size, cfg.Margin)
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(data)
	return err
}

// config merges the config file, the environment and the flags.
func (c *command) config() (Config, error) {
	s, o := c.set, &c.o
	cfg, err := LoadConfig(o.cfgFile)
	if err != nil {
		return cfg, err
	}
	if err := cfg.applyEnv(c.getenv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if s.IsSet("account") {
		cfg.Account = o.account
	}
	if s.IsSet("currency") {
		cfg.Currency = o.currency
	}
	if s.IsSet("recipient") {
		cfg.Recipient = o.recipient
	}
	if s.IsSet("size") {
		cfg.Size = o.size
	}
	if s.IsSet("margin") {
		cfg.Margin = o.margin
	}
	if s.IsSet("level") {
		cfg.Level = o.level
	}
	if s.IsSet("backend") {
		cfg.Backend = o.backend
	}
	if o.noCRC {
		cfg.Checksum = false
	}
	return cfg, nil
}

// parseDescriptor parses the descriptor given as arguments or on
// standard input.
func (c *command) parseDescriptor() (spayd.Descriptor, error) {
	var s string
	if args := c.set.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, c.stdin); err != nil {
			return spayd.Descriptor{}, err
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	d, err := spayd.Parse(s)
	if err != nil {
		return d, err
	}
	if c.o.noCRC {
		d = d.WithChecksum(false)
	}
	return d, nil
}

// buildDescriptor builds a descriptor from cfg and the flags.
func (c *command) buildDescriptor(cfg Config) (spayd.Descriptor, error) {
	s, o := c.set, &c.o
	acc, err := spayd.ParseAccount(cfg.Account)
	if err != nil {
		return spayd.Descriptor{}, err
	}
	b := spayd.NewBuilder(spayd.New(acc).WithChecksum(cfg.Checksum))
	add := func(key spayd.Key, value any) {
		if err == nil {
			err = b.Add(key, value)
		}
	}

	var amount money.Money
	if o.amount != "" {
		if amount, err = money.NewFromString(o.amount, cfg.Currency); err != nil {
			return spayd.Descriptor{}, err
		}
	}
	if o.invoice != "" {
		if o.amount == "" {
			return spayd.Descriptor{}, errors.New("-I requires -m")
		}
		issued := c.now()
		if o.issued != "" {
			if issued, err = parseDate(o.issued); err != nil {
				return spayd.Descriptor{}, err
			}
		}
		inv := spayd.NewInvoice(o.invoice, issued, amount)
		for _, f := range []struct {
			key   spayd.InvoiceKey
			value string
		}{
			{spayd.InvoiceKeySellerIdentificationNumber, o.sellerID},
			{spayd.InvoiceKeySellerVatIdentificationNumber, o.sellerVAT},
			{spayd.InvoiceKeyBuyerIdentificationNumber, o.buyerID},
			{spayd.InvoiceKeyBuyerVatIdentificationNumber, o.buyerVAT},
		} {
			if f.value != "" {
				inv = inv.With(f.key, f.value)
			}
		}
		add(spayd.KeyInvoice, inv)
	} else if o.amount != "" {
		add(spayd.KeyAmount, amount)
	}
	if len(o.alt) != 0 {
		accts := make([]spayd.Account, len(o.alt))
		for i, v := range o.alt {
			if accts[i], err = spayd.ParseAccount(v); err != nil {
				return spayd.Descriptor{}, err
			}
		}
		add(spayd.KeyAlternativeAccount, accts)
	}
	if o.due != "" {
		t, err := parseDate(o.due)
		if err != nil {
			return spayd.Descriptor{}, err
		}
		add(spayd.KeyDueDate, t)
	}
	if o.msg != "" {
		add(spayd.KeyMessage, spayd.Sanitize(o.msg, maxMessage, o.upper))
	}
	if cfg.Recipient != "" {
		add(spayd.KeyRecipientName,
			spayd.Sanitize(cfg.Recipient, maxRecipient, o.upper))
	}
	for _, sym := range []struct {
		name string
		key  spayd.Key
		v    string
	}{
		{"vs", spayd.KeyVariableSymbol, o.vs},
		{"ss", spayd.KeySpecificSymbol, o.ss},
		{"ks", spayd.KeyConstantSymbol, o.ks},
		{"reference", spayd.KeyReference, o.ref},
	} {
		if !s.IsSet(sym.name) {
			continue
		}
		n, perr := strconv.ParseUint(sym.v, 10, 64)
		if perr != nil {
			return spayd.Descriptor{}, fmt.Errorf("--%s: %w", sym.name, perr)
		}
		add(sym.key, n)
	}
	if o.instant {
		add(spayd.KeyPaymentType, string(spayd.InstantPayment))
	}
	switch {
	case o.email != "":
		add(spayd.KeyNotificationType, string(spayd.NotifyEmail))
		add(spayd.KeyNotification, o.email)
	case o.phone != "":
		add(spayd.KeyNotificationType, string(spayd.NotifyPhone))
		add(spayd.KeyNotification, o.phone)
	}
	if err != nil {
		return spayd.Descriptor{}, err
	}
	return b.Descriptor(), nil
}

// parseDate parses a date as YYYY-MM-DD or YYYYMMDD.
func parseDate(s string) (time.Time, error) {
	layout := "2006-01-02"
	if !strings.Contains(s, "-") {
		layout = "20060102"
	}
	return time.Parse(layout, s)
}

// write calls fn with the output file or standard output.
func (c *command) write(fn func(io.Writer) error) error {
	if c.o.fn == "" {
		return fn(c.stdout)
	}
	f, err := os.OpenFile(c.o.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}
	err = fn(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func main() {
	log.SetFlags(0)
	_ = godotenv.Load()
	c := newCommand(os.Getenv, os.Stdin, os.Stdout, os.Stderr,
		isatty.IsTerminal(uintptr(syscall.Stdout)))
	if err := c.run(os.Args); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		log.Fatalln(err)
	}
}
