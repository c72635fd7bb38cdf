// Package ofx loads prior-transaction history from OFX/QFX bank
// statements, so imports can dedupe against archives that predate the
// local database.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"movimenti/internal/model"
	"movimenti/internal/normalize"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX statement into history records.
func (p *Parser) ParseFile(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx))
			}
		}
	}

	slog.Info("parsed OFX statement",
		"transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)
	return transactions, nil
}

func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) model.Transaction {
	description := string(ofxTx.Name)
	if ofxTx.Payee != nil && ofxTx.Payee.Name != "" {
		description = string(ofxTx.Payee.Name)
	} else if ofxTx.Memo != "" && description == "" {
		description = string(ofxTx.Memo)
	}

	return model.Transaction{
		ID:          string(ofxTx.FiTID),
		Date:        ofxTx.DtPosted.Time,
		Description: normalize.CleanDescription(description),
		AmountCents: ratToCents(&ofxTx.TrnAmt.Rat),
	}
}

var hundred = big.NewRat(100, 1)

// ratToCents converts an OFX decimal amount to signed minor units,
// rounding half away from zero. OFX already uses negative for debits.
func ratToCents(amount *big.Rat) int64 {
	cents := new(big.Rat).Mul(amount, hundred)
	num := new(big.Int).Set(cents.Num())
	den := cents.Denom()

	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	rem.Abs(rem)
	rem.Mul(rem, big.NewInt(2))
	if rem.Cmp(den) >= 0 {
		if num.Sign() < 0 {
			quo.Sub(quo, big.NewInt(1))
		} else {
			quo.Add(quo, big.NewInt(1))
		}
	}
	return quo.Int64()
}
