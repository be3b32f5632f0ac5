// Command chatter-admin prints the contents of a chatter database as tables.
//
//	chatter-admin [-driver sqlite] [-dsn chatter.db] users
//	chatter-admin groups
//	chatter-admin members <group-id>
//	chatter-admin messages [-limit 20] <group-id>
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gookit/color"
	"github.com/mikepea/chatter/pkg/chatter/config"
	"github.com/mikepea/chatter/pkg/chatter/database"
	"github.com/mikepea/chatter/pkg/chatter/groups"
	"github.com/mikepea/chatter/pkg/chatter/messages"
	"github.com/mikepea/chatter/pkg/chatter/store"
	"github.com/mikepea/chatter/pkg/chatter/store/gormstore"
	"github.com/mikepea/chatter/pkg/chatter/users"
	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		color.Red.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("chatter-admin", flag.ContinueOnError)
	fs.SetOutput(out)
	driver := fs.String("driver", cfg.DBDriver, "database driver (sqlite or postgres)")
	dsn := fs.String("dsn", cfg.DBDSN, "database connection string")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("missing command: users, groups, members or messages")
	}

	db, err := database.Open(database.Config{Driver: *driver, DSN: *dsn}, zap.NewNop())
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	return dispatch(ctx, gormstore.New(db), fs.Args(), out)
}

func dispatch(ctx context.Context, s store.Store, args []string, out io.Writer) error {
	log := zap.NewNop()
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "users":
		list, err := users.NewService(s, log).ListAll(ctx)
		if err != nil {
			return err
		}
		renderUsers(out, list)
		return nil

	case "groups":
		list, err := groups.NewLedger(s, log).ListGroups(ctx)
		if err != nil {
			return err
		}
		renderGroups(out, list)
		return nil

	case "members":
		groupID, err := groupArg(rest)
		if err != nil {
			return err
		}
		group, err := groups.NewLedger(s, log).GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if group == nil {
			return fmt.Errorf("group %d not found", groupID)
		}
		fmt.Fprint(out, color.Cyan.Sprintf("%s (#%d)\n", group.Name, group.ID))
		renderMembers(out, group.Members)
		return nil

	case "messages":
		fs := flag.NewFlagSet("messages", flag.ContinueOnError)
		fs.SetOutput(out)
		limit := fs.Int("limit", 20, "number of messages to show, newest first")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		groupID, err := groupArg(fs.Args())
		if err != nil {
			return err
		}
		list, err := messages.NewLedger(s, log).ListByGroup(ctx, groupID, messages.ListOptions{Limit: *limit})
		if err != nil {
			return err
		}
		renderMessages(out, list)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func groupArg(args []string) (uint, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one group id")
	}
	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid group id %q", args[0])
	}
	return uint(id), nil
}
