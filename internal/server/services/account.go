package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/digest"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/repomanager"
)

// NewAccount is one generated credential pair as submitted by a client.
// PasswordMD5 may be left empty, the server fills it in; when present it must
// match the digest of Password.
type NewAccount struct {
	Email       string
	Password    string
	PasswordMD5 string
}

// AccountService stores and lists the generated accounts the game walks
// through.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewAccountService constructs an AccountService.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{db: db, repomanager: m}
}

// CreateBatch inserts the batch for userID in a single transaction and
// returns the number of rows created. Either the whole batch lands or none
// of it does. An empty batch is a validation error.
func (s *AccountService) CreateBatch(ctx context.Context, userID string, batch []NewAccount) (int, error) {
	if len(batch) == 0 {
		return 0, fmt.Errorf("%w: empty account batch", common.ErrorValidation)
	}

	rows := make([]*models.Account, 0, len(batch))
	for i, na := range batch {
		email := strings.TrimSpace(na.Email)
		if email == "" || na.Password == "" {
			return 0, fmt.Errorf("%w: account %d is missing email or password", common.ErrorValidation, i)
		}
		// Клиент мог посчитать дайджест сам, тогда он обязан совпасть.
		md5hex := digest.MD5Hex(na.Password)
		if na.PasswordMD5 != "" && na.PasswordMD5 != md5hex {
			return 0, fmt.Errorf("%w: account %d password digest mismatch", common.ErrorValidation, i)
		}
		rows = append(rows, &models.Account{
			UserID:      userID,
			Email:       email,
			Password:    na.Password,
			PasswordMD5: md5hex,
		})
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)
		for _, row := range rows {
			if _, err := repo.Create(ctx, row); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error creating accounts: %v", err)
	}

	return len(rows), nil
}

// List returns the accounts of userID in board order plus the total count.
func (s *AccountService) List(ctx context.Context, userID string) ([]*models.Account, int, error) {
	repo := s.repomanager.Accounts(s.db)

	list, err := repo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing accounts: %v", err)
	}
	total, err := repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting accounts: %v", err)
	}
	return list, total, nil
}

// Reset deletes every account of userID and rewinds the game cursor to the
// start of level one, in one transaction.
func (s *AccountService) Reset(ctx context.Context, userID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).DeleteAllForUser(ctx, userID); err != nil {
			return err
		}
		return s.repomanager.GameStates(tx).Upsert(ctx, &models.GameState{
			UserID:       userID,
			CurrentIndex: 0,
			CurrentLevel: 1,
		})
	})
	if err != nil {
		return fmt.Errorf("error resetting accounts: %v", err)
	}
	return nil
}
