package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/adrianliechti/wingman-search/pkg/tool/mcp"
	"github.com/adrianliechti/wingman-search/pkg/tool/search"
)

func main() {
	commandFlag := flag.String("command", "wingman-search", "server command")
	urlFlag := flag.String("url", "", "server url (streamable http) instead of spawning a command")
	listFlag := flag.Bool("list", false, "list tools and exit")

	queryFlag := flag.String("query", "", "search query")
	engineFlag := flag.String("engine", "", "search engine")
	countFlag := flag.Int("count", 0, "number of results")
	domainFlag := flag.String("domain", "", "restrict results to domain")
	recencyFlag := flag.String("recency", "", "recency filter")
	sizeFlag := flag.String("content-size", "", "content size (medium, high)")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client, err := createClient(*urlFlag, *commandFlag, flag.Args())

	if err != nil {
		fatal(err)
	}

	if *listFlag {
		tools, err := client.Tools(ctx)

		if err != nil {
			fatal(err)
		}

		for _, t := range tools {
			fmt.Printf("%s\t%s\n", t.Name, firstLine(t.Description))
		}

		return
	}

	query := *queryFlag

	if query == "" {
		fatal(fmt.Errorf("missing -query"))
	}

	parameters := map[string]any{
		"query": query,
	}

	if *engineFlag != "" {
		parameters["search_engine"] = *engineFlag
	}

	if *countFlag != 0 {
		parameters["count"] = *countFlag
	}

	if *domainFlag != "" {
		parameters["search_domain_filter"] = *domainFlag
	}

	if *recencyFlag != "" {
		parameters["search_recency_filter"] = *recencyFlag
	}

	if *sizeFlag != "" {
		parameters["content_size"] = *sizeFlag
	}

	result, err := client.Execute(ctx, search.ToolName, parameters)

	if err != nil {
		fatal(err)
	}

	fmt.Println(result)
}

func createClient(url, command string, args []string) (*mcp.Client, error) {
	if url != "" {
		return mcp.NewHTTP(url, nil)
	}

	return mcp.NewStdio(command, os.Environ(), args)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
