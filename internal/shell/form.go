package shell

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/config"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
)

// Defaults prefill the form. After a run, the shell passes the previous
// answers so Start-again only needs the changes.
type Defaults struct {
	Folder     string
	Selected   []string
	Additional string
}

// initialDefaults preselects the catalog's default-checked packages.
func initialDefaults(cat catalog.Catalog) Defaults {
	return Defaults{Selected: cat.Defaults()}
}

// defaultsFromRequest rebuilds form values from a submitted request.
func defaultsFromRequest(req provision.Request) Defaults {
	return Defaults{
		Folder:     req.Folder,
		Selected:   append([]string(nil), req.Selected...),
		Additional: strings.Join(req.Additional, ", "),
	}
}

// Collect prompts for a request. It returns ErrAborted when the user leaves a
// prompt or declines the final confirmation.
func Collect(ui UI, cat catalog.Catalog, startDir string, defaults Defaults) (provision.Request, error) {
	folder, err := promptFolder(ui, startDir, defaults.Folder)
	if err != nil {
		return provision.Request{}, err
	}

	var selected []string
	for _, category := range cat.Categories {
		var checked []string
		for _, pkg := range category.Packages {
			if slices.Contains(defaults.Selected, pkg) {
				checked = append(checked, pkg)
			}
		}
		if err := ui.MultiSelect(fmt.Sprintf(messages.ShellCategoryTitleFmt, category.Title), category.Packages, &checked); err != nil {
			return provision.Request{}, err
		}
		selected = append(selected, checked...)
	}

	additional := defaults.Additional
	if err := ui.Input(messages.ShellAdditionalTitle, messages.ShellAdditionalPlaceholder, &additional); err != nil {
		return provision.Request{}, err
	}

	req := provision.Request{
		Folder:     folder,
		Selected:   cat.Order(selected),
		Additional: provision.ParseAdditional(additional),
	}.Normalize()

	confirmed := true
	if err := ui.Confirm(confirmTitle(req.Folder, len(req.Packages())), &confirmed); err != nil {
		return provision.Request{}, err
	}
	if !confirmed {
		return provision.Request{}, ErrAborted
	}
	return req, nil
}

func promptFolder(ui UI, startDir string, current string) (string, error) {
	method := messages.ShellFolderMethodType
	options := []string{messages.ShellFolderMethodType, messages.ShellFolderMethodBrowse}
	if err := ui.Select(messages.ShellFolderMethodTitle, options, &method); err != nil {
		return "", err
	}

	folder := current
	switch method {
	case messages.ShellFolderMethodType:
		if err := ui.Input(messages.ShellFolderInputTitle, startDir, &folder); err != nil {
			return "", err
		}
	case messages.ShellFolderMethodBrowse:
		start := startDir
		if current != "" {
			start = current
		}
		if err := ui.PickDir(messages.ShellFolderPickerTitle, start, &folder); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf(messages.ShellUnknownFolderMethodFmt, method)
	}

	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", nil
	}
	expanded, err := config.ExpandPath(folder)
	if err != nil {
		return "", err
	}
	return expanded, nil
}

// isAbort reports whether err means the user left the form.
func isAbort(err error) bool {
	return errors.Is(err, ErrAborted)
}
