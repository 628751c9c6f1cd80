package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"library-records/library"

	"github.com/rs/zerolog"
)

// configFile is picked up from the working directory when present;
// otherwise the stores live next to the binary under their default names.
const configFile = "library.yml"

func main() {
	cfg := library.DefaultConfig(".")
	if _, err := os.Stat(configFile); err == nil {
		loaded, err := library.LoadConfig(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", configFile, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	manager := library.NewManager(cfg, log)
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("Welcome to the Library Record Manager!")
	fmt.Println("Available commands:")
	fmt.Println("  Books: add book, search title, search category, search author, list books")
	fmt.Println("  Students: add student")
	fmt.Println("  Circulation: issue, list issues")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add book":
			handleAddBook(scanner, manager)
		case "add student":
			handleAddStudent(scanner, manager)
		case "search title":
			handleSearch(scanner, manager, library.SearchTitle, "Title")
		case "search category":
			handleSearch(scanner, manager, library.SearchCategory, "Category")
		case "search author":
			handleSearch(scanner, manager, library.SearchAuthor, "Author name or email")
		case "list books":
			handleListBooks(manager)
		case "issue":
			handleIssue(scanner, manager)
		case "list issues":
			handleListIssues(scanner, manager)
		case "exit":
			fmt.Println("Goodbye!")
			return
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
}

func prompt(sc *bufio.Scanner, label string) (string, bool) {
	fmt.Printf("%s: ", label)
	if !sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(sc.Text()), true
}

func handleAddBook(sc *bufio.Scanner, mgr *library.Manager) {
	isbn, ok := prompt(sc, "ISBN")
	if !ok {
		return
	}
	title, ok := prompt(sc, "Title")
	if !ok {
		return
	}
	category, ok := prompt(sc, "Category")
	if !ok {
		return
	}
	author, ok := prompt(sc, "Author name")
	if !ok {
		return
	}
	email, ok := prompt(sc, "Author email")
	if !ok {
		return
	}
	qtyStr, ok := prompt(sc, "Number of copies")
	if !ok {
		return
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		fmt.Printf("Invalid number of copies: %s\n", qtyStr)
		return
	}

	book := &library.Book{
		ISBN:     isbn,
		Title:    title,
		Category: category,
		Quantity: qty,
		Author:   author,
		Email:    email,
	}
	if err := mgr.AddBook(book); err != nil {
		fmt.Printf("Error adding book: %v\n", err)
		return
	}
	fmt.Printf("Added book '%s' (%s), %d copies.\n", book.Title, book.ISBN, book.Quantity)
}

func handleAddStudent(sc *bufio.Scanner, mgr *library.Manager) {
	usn, ok := prompt(sc, "USN")
	if !ok {
		return
	}
	name, ok := prompt(sc, "Name")
	if !ok {
		return
	}
	if err := mgr.AddStudent(&library.Student{USN: usn, Name: name}); err != nil {
		fmt.Printf("Error adding student: %v\n", err)
		return
	}
	fmt.Printf("Added student '%s' (USN %s)\n", name, usn)
}

func handleSearch(sc *bufio.Scanner, mgr *library.Manager, mode library.SearchMode, label string) {
	query, ok := prompt(sc, label)
	if !ok {
		return
	}
	books, err := mgr.SearchBooks(mode, query)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Printf("No books found matching '%s'.\n", query)
		return
	}
	printBooks(books)
}

func handleListBooks(mgr *library.Manager) {
	books, err := mgr.ListBooks()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(books) == 0 {
		fmt.Println("No books in library.")
		return
	}
	printBooks(books)
}

func handleIssue(sc *bufio.Scanner, mgr *library.Manager) {
	usn, ok := prompt(sc, "Student USN")
	if !ok {
		return
	}
	isbn, ok := prompt(sc, "Book ISBN")
	if !ok {
		return
	}
	iss, err := mgr.IssueBook(usn, isbn)
	if err != nil {
		fmt.Printf("Error creating issue: %v\n", err)
		return
	}
	fmt.Printf("Issued '%s' to %s. Return by %s.\n", iss.BookTitle, iss.StudentName, iss.ReturnDate)
}

func handleListIssues(sc *bufio.Scanner, mgr *library.Manager) {
	usn, ok := prompt(sc, "Student USN")
	if !ok {
		return
	}
	issues, err := mgr.BooksIssuedTo(usn)
	if err != nil {
		fmt.Printf("Error reading issued books: %v\n", err)
		return
	}
	if len(issues) == 0 {
		fmt.Println("No books found for this USN.")
		return
	}
	fmt.Printf("%-30s %-12s %-12s\n", "Title", "Issued", "Return By")
	fmt.Println(strings.Repeat("-", 56))
	for _, iss := range issues {
		fmt.Printf("%-30s %-12s %-12s\n", truncateString(iss.BookTitle, 30), iss.IssueDate, iss.ReturnDate)
	}
}

func printBooks(books []*library.Book) {
	fmt.Printf("%-15s %-30s %-15s %-8s %-20s %s\n", "ISBN", "Title", "Category", "Copies", "Author", "Email")
	fmt.Println(strings.Repeat("-", 110))
	for _, b := range books {
		fmt.Printf("%-15s %-30s %-15s %-8d %-20s %s\n",
			b.ISBN,
			truncateString(b.Title, 30),
			truncateString(b.Category, 15),
			b.Quantity,
			truncateString(b.Author, 20),
			b.Email)
	}
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
