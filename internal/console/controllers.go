package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	gamein "rps/internal/modules/game/port/in"
	apperrors "rps/internal/platform/errors"
)

const (
	gameIDPattern = `[a-z0-9]{8}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{4}-[a-z0-9]{12}`
	roundsPattern = `3|5|7|9`
	handPattern   = `r|p|s`

	tokenBack = "qm"
	tokenQuit = "q"
	tokenSave = "S"
	tokenYes  = "y"
)

// Notice is a recoverable failure carrying text for the current panel.
type Notice struct {
	Text string
	Err  error
}

func (n *Notice) Error() string { return n.Err.Error() }
func (n *Notice) Unwrap() error { return n.Err }

// ExitError ends the session. Farewell is printed before the process stops.
type ExitError struct {
	Farewell string
}

func (e *ExitError) Error() string { return apperrors.ErrExit.Error() }
func (e *ExitError) Unwrap() error { return apperrors.ErrExit }

// controller holds what every panel needs.
type controller struct {
	uc     gamein.Usecase
	flags  *Flags
	render Renderer
}

func (c controller) explain(err error, id string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return &Notice{Text: c.render.NotFound(id), Err: err}
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return &Notice{Text: c.render.CapacityReached(c.uc.Snapshot().Capacity), Err: err}
	default:
		return err
	}
}

// leaveGame abandons the running game and heads back to the main menu.
func (c controller) leaveGame(context.Context) error {
	c.flags.RoundsConfigured = false
	c.flags.WantsBackToMainMenu = true
	c.uc.Abandon()
	return nil
}

func (c controller) quitGame(context.Context) error {
	return &ExitError{Farewell: c.render.FinalStats(c.uc.Snapshot())}
}

type mainMenuController struct{ controller }

func (c mainMenuController) router() *Router {
	return NewRouter(
		Action("1", c.startGame),
		Action("2", c.load),
		Action("3", c.delete),
		Action("4", c.listSaved),
		Action("5", c.showRules),
		Action("6", c.quit),
	)
}

func (c mainMenuController) startGame(context.Context) error {
	c.uc.Abandon()
	return nil
}

func (c mainMenuController) load(context.Context) error {
	c.flags.WantsLoad = true
	return nil
}

func (c mainMenuController) delete(context.Context) error {
	c.flags.WantsDelete = true
	return nil
}

func (c mainMenuController) listSaved(context.Context) error {
	c.flags.WantsListSaved = true
	return nil
}

func (c mainMenuController) showRules(context.Context) error {
	c.flags.WantsGameRules = true
	return nil
}

func (c mainMenuController) quit(context.Context) error {
	return &ExitError{Farewell: c.render.FinalStats(c.uc.Snapshot()) + "\n" + c.render.Goodbye()}
}

type gameIDController struct{ controller }

func (c gameIDController) router() *Router {
	return NewRouter(
		Action(tokenBack, c.back),
		Consume(gameIDPattern, c.submit),
	)
}

func (c gameIDController) back(context.Context) error {
	c.flags.WantsLoad = false
	c.flags.WantsDelete = false
	c.flags.WantsBackToMainMenu = true
	return nil
}

func (c gameIDController) submit(ctx context.Context, id string) error {
	switch {
	case c.flags.WantsLoad:
		if err := c.uc.Restore(ctx, id); err != nil {
			return c.explain(err, id)
		}
		c.flags.WantsLoad = false
		c.flags.RoundsConfigured = true
	case c.flags.WantsDelete:
		if err := c.uc.Delete(ctx, id); err != nil {
			return c.explain(err, id)
		}
		c.flags.WantsDelete = false
		c.flags.WantsBackToMainMenu = true
	default:
		return fmt.Errorf("game id %s given without a pending load or delete", id)
	}
	return nil
}

type roundAmountController struct{ controller }

func (c roundAmountController) router() *Router {
	return NewRouter(
		Consume(roundsPattern, c.submit),
		Action(tokenBack, c.leaveGame),
	)
}

func (c roundAmountController) submit(_ context.Context, input string) error {
	n, err := strconv.ParseUint(input, 10, 0)
	if err != nil {
		return fmt.Errorf("%w: rounds %q", apperrors.ErrInvalidInput, input)
	}
	if err := c.uc.ConfigureRounds(uint(n)); err != nil {
		return err
	}
	c.flags.RoundsConfigured = true
	return nil
}

type inGameController struct{ controller }

func (c inGameController) router() *Router {
	return NewRouter(
		Consume(handPattern, c.play),
		Action(tokenSave, c.save),
		Action(tokenBack, c.leaveGame),
		Action(tokenQuit, c.quitGame),
	)
}

func (c inGameController) play(ctx context.Context, hand string) error {
	_, err := c.uc.PlayRound(ctx, hand)
	return err
}

func (c inGameController) save(ctx context.Context) error {
	if _, err := c.uc.Save(ctx); err != nil {
		return c.explain(err, "")
	}
	return nil
}

type continueGameController struct{ controller }

func (c continueGameController) router() *Router {
	return NewRouter(
		Action(tokenYes, c.playAgain),
		Action(tokenBack, c.leaveGame),
		Action(tokenQuit, c.quitGame),
	)
}

func (c continueGameController) playAgain(context.Context) error {
	c.uc.NextGame()
	return nil
}
