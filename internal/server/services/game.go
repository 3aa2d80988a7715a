package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/accmachine/internal/common"
	"github.com/dmitrijs2005/accmachine/internal/dbx"
	"github.com/dmitrijs2005/accmachine/internal/machine"
	"github.com/dmitrijs2005/accmachine/internal/server/models"
	"github.com/dmitrijs2005/accmachine/internal/server/repositories/repomanager"
)

// GameView is one snapshot of the walk: the position, the level and the
// account currently in front of the player.
type GameView struct {
	Index   int
	Level   int
	Total   int
	Account *models.Account
}

// GameService drives the account walk. The counter rules live in the machine
// package, this service only loads the list, applies them and persists the
// result.
type GameService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewGameService(db *sql.DB, m repomanager.RepositoryManager) *GameService {
	return &GameService{db: db, repomanager: m}
}

// Current returns the view the player is standing on without moving. A stale
// cursor (accounts were removed since the last step) folds back to the start
// of the list. Missing state initializes to the first account on level one.
func (s *GameService) Current(ctx context.Context, userID string) (*GameView, error) {
	var view *GameView

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.repomanager.Accounts(tx).GetAllByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return common.ErrorNoAccounts
		}

		index, level, err := s.loadState(ctx, tx, userID)
		if err != nil {
			return err
		}

		normIndex, normLevel := machine.Normalize(index, level, len(list))
		if normIndex != index || normLevel != level {
			err = s.repomanager.GameStates(tx).Upsert(ctx, &models.GameState{
				UserID:       userID,
				CurrentIndex: normIndex,
				CurrentLevel: normLevel,
			})
			if err != nil {
				return err
			}
		}

		view = &GameView{Index: normIndex, Level: normLevel, Total: len(list), Account: list[normIndex]}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNoAccounts) {
			return nil, err
		}
		return nil, fmt.Errorf("error loading game state: %v", err)
	}

	return view, nil
}

// Advance moves the cursor one account forward and persists the new position.
// Wrapping past the end of the list restarts at the first account one level
// up.
func (s *GameService) Advance(ctx context.Context, userID string) (*GameView, error) {
	var view *GameView

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		list, err := s.repomanager.Accounts(tx).GetAllByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			return common.ErrorNoAccounts
		}

		index, level, err := s.loadState(ctx, tx, userID)
		if err != nil {
			return err
		}

		nextIndex, nextLevel := machine.Advance(index, level, len(list))
		err = s.repomanager.GameStates(tx).Upsert(ctx, &models.GameState{
			UserID:       userID,
			CurrentIndex: nextIndex,
			CurrentLevel: nextLevel,
		})
		if err != nil {
			return err
		}

		view = &GameView{Index: nextIndex, Level: nextLevel, Total: len(list), Account: list[nextIndex]}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNoAccounts) {
			return nil, err
		}
		return nil, fmt.Errorf("error advancing game state: %v", err)
	}

	return view, nil
}

// loadState reads the stored cursor, defaulting to the beginning of level one
// for a player who has never stepped.
func (s *GameService) loadState(ctx context.Context, tx dbx.DBTX, userID string) (int, int, error) {
	state, err := s.repomanager.GameStates(tx).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, 1, nil
		}
		return 0, 0, err
	}
	return state.CurrentIndex, state.CurrentLevel, nil
}
