package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "info", "dump":
		if len(os.Args) < 3 {
			fmt.Printf("Usage: journal %s <file%s>\n", os.Args[1], storage.JournalExt)
			os.Exit(2)
		}
		session, err := (&storage.Journal{}).Load(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid journal: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("session  %s\nseed     %d\nrecorded %s\ndepth    %d\ncommands %d\n",
			session.ID, session.Seed,
			time.Unix(session.Timestamp, 0).Format(time.RFC3339),
			session.Depth, len(session.Entries))
		if os.Args[1] == "dump" {
			for i, e := range session.Entries {
				fmt.Printf("%5d  init=%-7d actor=%-5s %s\n", i, e.Initiative, e.Actor, e.Cmd)
			}
		}
	case "format":
		if len(os.Args) < 3 {
			fmt.Println("Usage: journal format <unix_timestamp>")
			return
		}
		ts, err := strconv.ParseInt(os.Args[2], 10, 64)
		if err != nil {
			fmt.Printf("Invalid timestamp: %v\n", err)
			return
		}
		fmt.Println(time.Unix(ts, 0).Format(time.RFC3339))
	default:
		printHelp()
	}
}

func printHelp() {
	fmt.Println(`Journal - просмотр журналов сессий
Commands:
  info <file>            - заголовок журнала (сид, время, число команд)
  dump <file>            - заголовок и все команды по порядку
  format <timestamp>     - преобразовать Unix время в читаемый формат`)
}
