package main

import (
	"bytes"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"

	ansicolor "github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/unicode/norm"
)

const (
	bannerTitle = "🔐 URL Encoder для PostgreSQL DSN"
	noChanges   = "  (специальные символы не найдены)"
	nfcNotice   = "⚠️  пароль не в форме NFC: такой же на вид пароль, набранный на другой системе, может закодироваться иначе"
)

// DSN holds the parts of the sample connection string around the password.
type DSN struct {
	User     string
	Host     string
	Port     int
	Database string
}

var defaultDSN = DSN{
	User:     "username",
	Host:     "host",
	Port:     5432,
	Database: "database",
}

// URI renders a postgres:// connection string with the given, already
// encoded, password. The user name goes through Encode as well, the
// database is path-escaped and IPv6 hosts are bracketed.
func (d DSN) URI(encodedPassword string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s",
		Encode(d.User),
		encodedPassword,
		net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		url.PathEscape(d.Database),
	)
}

type palette struct {
	header  *ansicolor.Color
	changed *ansicolor.Color
	dsn     *ansicolor.Color
}

func newPalette(force bool) palette {
	p := palette{
		header:  ansicolor.New(ansicolor.Bold),
		changed: ansicolor.New(ansicolor.FgGreen),
		dsn:     ansicolor.New(ansicolor.FgCyan),
	}

	if force {
		p.header.EnableColor()
		p.changed.EnableColor()
		p.dsn.EnableColor()
	}

	return p
}

func printBanner(w io.Writer, colors palette) {
	fmt.Fprintln(w, colors.header.Sprint(bannerTitle))
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

type report struct {
	password string
	encoded  string
	changes  []Change
	dsn      DSN
	table    bool
	colors   palette
}

func newReport(password string, dsn DSN, table bool, colors palette) report {
	return report{
		password: password,
		encoded:  Encode(password),
		changes:  Changes(password),
		dsn:      dsn,
		table:    table,
		colors:   colors,
	}
}

func (r report) render(w io.Writer) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "\n%s\n", r.colors.header.Sprint("✅ Результат:"))
	fmt.Fprintf(&buf, "Оригинал:  %s\n", r.password)
	fmt.Fprintf(&buf, "Закодирован: %s\n", r.encoded)

	fmt.Fprintf(&buf, "\n%s\n", r.colors.header.Sprint("📝 Что изменилось:"))
	switch {
	case len(r.changes) == 0:
		fmt.Fprintln(&buf, noChanges)
	case r.table:
		renderChangeTable(&buf, r.changes)
	default:
		for _, c := range r.changes {
			fmt.Fprintf(&buf, "  %s  →  %s\n", c.Original, r.colors.changed.Sprint(c.Encoded))
		}
	}

	fmt.Fprintf(&buf, "\n%s\n", r.colors.header.Sprint("🔗 Используйте в DSN:"))
	fmt.Fprintf(&buf, "DB_DSN=%s\n", r.colors.dsn.Sprint(r.dsn.URI(r.encoded)))

	_, err := buf.WriteTo(w)
	return err
}

func renderChangeTable(w io.Writer, changes []Change) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"символ", "код"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")

	for _, c := range changes {
		table.Append([]string{fmt.Sprintf("%q", c.Original), c.Encoded})
	}

	table.Render()
}

// warnNotNFC writes a notice when password would encode differently after
// NFC normalization. The password itself is never printed.
func warnNotNFC(w io.Writer, password string) {
	if norm.NFC.IsNormalString(password) {
		return
	}

	fmt.Fprintln(w, nfcNotice)
}
