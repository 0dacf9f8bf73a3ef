package launcher

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// checkFunds verifies the account can still spend requiredCents. The guard
// fails closed: an account answer with missing or unparseable money fields
// counts as insufficient.
func (l *Launcher) checkFunds(ctx context.Context, logger *zap.Logger, accountID, token string, requiredCents int64) error {
	acct, err := l.graph.AccountBalance(ctx, accountID, token)
	if err != nil {
		return &UpstreamError{Stage: StageBalance, Err: err}
	}

	spendCap, ok := parseCents(acct.SpendCap)
	if !ok {
		logger.Warn("account spend_cap unusable", zap.String("spend_cap", acct.SpendCap))
		return &FundsError{RequiredCents: requiredCents, Reason: "spend_cap missing or unparseable"}
	}
	spent, ok := parseCents(acct.AmountSpent)
	if !ok {
		logger.Warn("account amount_spent unusable", zap.String("amount_spent", acct.AmountSpent))
		return &FundsError{RequiredCents: requiredCents, Reason: "amount_spent missing or unparseable"}
	}

	available := spendCap - spent
	if requiredCents > available {
		logger.Warn("budget exceeds available balance",
			zap.Int64("required_cents", requiredCents),
			zap.Int64("available_cents", available),
		)
		return &FundsError{RequiredCents: requiredCents, AvailableCents: available, Reason: "budget exceeds available balance"}
	}

	logger.Debug("balance check passed",
		zap.Int64("required_cents", requiredCents),
		zap.Int64("available_cents", available),
		zap.String("currency", acct.Currency),
	)
	return nil
}

func parseCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
