package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

func (a *App) loadProfile(ctx context.Context) (*models.Profile, error) {
	snap, err := a.profiles.Get(ctx, a.owner())
	if errors.Is(err, cache.ErrSuperseded) {
		return nil, errors.New("session changed while loading the profile")
	}
	if err != nil {
		return nil, err
	}
	return snap.Data, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Profile prints the signed-in user's profile.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}
	s, _ := a.session.Current()

	t := newTable(a.out, "FIELD", "VALUE")
	t.AddRow("Email", s.Email)
	t.AddRow("Initials", models.Initials(p, s.Email))
	if p == nil {
		if err := t.Render(); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "No profile yet")
		return nil
	}
	t.AddRow("Name", deref(p.FullName))
	t.AddRow("Bio", deref(p.Bio))
	t.AddRow("Avatar", deref(p.AvatarURL))
	return t.Render()
}

// EditProfile prompts for the full name and bio.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.loadProfile(ctx)
	if err != nil {
		return err
	}
	if p == nil {
		p = &models.Profile{}
	}

	var patch models.ProfilePatch

	name, changed, err := getEdit(a.reader, "Full name", deref(p.FullName), a.out)
	if err != nil {
		return err
	}
	if changed {
		patch.FullName = &name
	}

	bio, changed, err := getEdit(a.reader, "Bio", deref(p.Bio), a.out)
	if err != nil {
		return err
	}
	if changed {
		patch.Bio = &bio
	}

	if patch.IsEmpty() {
		fmt.Fprintln(a.out, "Nothing to change")
		return nil
	}
	if verrs := validation.Profile(patch); len(verrs) > 0 {
		return errors.New(joinMessages(verrs))
	}
	_, _ = a.profiles.Update(ctx, a.owner(), patch)
	return nil
}

// Avatar uploads an image file as the new avatar.
func (a *App) Avatar(ctx context.Context, args []string) error {
	path, err := oneArg(args, "avatar <file>")
	if err != nil {
		return err
	}
	_, _ = a.profiles.UploadAvatar(ctx, a.owner(), path)
	return nil
}
