package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/minseo-dev/customerdesk/internal/config"
	"github.com/minseo-dev/customerdesk/internal/db"
	"github.com/minseo-dev/customerdesk/internal/model"
	"github.com/minseo-dev/customerdesk/internal/repository"
	"github.com/minseo-dev/customerdesk/internal/service"
)

// Текстовое меню поверх того же сервиса, что и веб-вариант.
// stdout здесь — интерфейс пользователя, поэтому печатаем напрямую.
func main() {
	_ = godotenv.Load(".env")

	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load db config: %v\n", err)
		os.Exit(1)
	}

	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init db: %v\n", err)
		os.Exit(1)
	}

	if err := model.AutoMigrate(gormDB); err != nil {
		fmt.Fprintf(os.Stderr, "auto migrate: %v\n", err)
		os.Exit(1)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sql DB: %v\n", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	svc := service.NewCustomerService(repository.NewGormCustomerRepository(gormDB))

	runMenu(svc, bufio.NewScanner(os.Stdin))
}

func runMenu(svc *service.CustomerService, in *bufio.Scanner) {
	ctx := context.Background()

	for {
		fmt.Println("\n=== Customer Desk ===")
		fmt.Println("1. List customers")
		fmt.Println("2. Search customers")
		fmt.Println("3. Add customer")
		fmt.Println("4. Update customer")
		fmt.Println("5. Delete customer")
		fmt.Println("0. Quit")

		switch prompt(in, "\nSelect an option: ") {
		case "1":
			listCustomers(ctx, svc)
		case "2":
			searchCustomers(ctx, svc, in)
		case "3":
			addCustomer(ctx, svc, in)
		case "4":
			updateCustomer(ctx, svc, in)
		case "5":
			deleteCustomer(ctx, svc, in)
		case "0":
			fmt.Println("\nBye.")
			return
		default:
			fmt.Println("\nInvalid option, try again.")
		}
	}
}

func listCustomers(ctx context.Context, svc *service.CustomerService) {
	customers, err := svc.List(ctx)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	if len(customers) == 0 {
		fmt.Println("\nNo customers yet.")
		return
	}
	fmt.Println("\n=== Customers ===")
	renderTable(customers)
}

func searchCustomers(ctx context.Context, svc *service.CustomerService, in *bufio.Scanner) {
	keyword := prompt(in, "\nSearch keyword: ")
	if keyword == "" {
		fmt.Println("\nPlease enter a keyword.")
		return
	}

	customers, err := svc.Search(ctx, keyword)
	if err != nil {
		fmt.Printf("\nError: %v\n", err)
		return
	}
	if len(customers) == 0 {
		fmt.Printf("\nNo customers matching %q.\n", keyword)
		return
	}
	fmt.Printf("\n=== Results for %q ===\n", keyword)
	renderTable(customers)
}

func addCustomer(ctx context.Context, svc *service.CustomerService, in *bufio.Scanner) {
	fmt.Println("\n=== New customer ===")
	name := prompt(in, "Name: ")
	if name == "" {
		fmt.Println("\nName is required.")
		return
	}

	input := service.CustomerInput{
		Name:     name,
		Phone:    prompt(in, "Phone (optional): "),
		Email:    prompt(in, "Email (optional): "),
		Company:  prompt(in, "Company (optional): "),
		Position: prompt(in, "Position (optional): "),
		Memo:     prompt(in, "Memo (optional): "),
	}

	_, res := svc.Add(ctx, input)
	fmt.Printf("\n%s\n", res.Message)
}

func updateCustomer(ctx context.Context, svc *service.CustomerService, in *bufio.Scanner) {
	listCustomers(ctx, svc)

	id, ok := promptID(in, "\nCustomer id to update: ")
	if !ok {
		return
	}

	fmt.Println("\nEnter new values (press Enter to keep the current one):")
	patch := service.CustomerPatch{}
	if v := prompt(in, "Name: "); v != "" {
		patch.Name = &v
	}
	if v := prompt(in, "Phone: "); v != "" {
		patch.Phone = &v
	}
	if v := prompt(in, "Email: "); v != "" {
		patch.Email = &v
	}
	if v := prompt(in, "Company: "); v != "" {
		patch.Company = &v
	}
	if v := prompt(in, "Position: "); v != "" {
		patch.Position = &v
	}
	if v := prompt(in, "Memo: "); v != "" {
		patch.Memo = &v
	}

	if patch.IsEmpty() {
		fmt.Println("\nNothing to update.")
		return
	}

	res := svc.Update(ctx, id, patch)
	fmt.Printf("\n%s\n", res.Message)
}

func deleteCustomer(ctx context.Context, svc *service.CustomerService, in *bufio.Scanner) {
	listCustomers(ctx, svc)

	id, ok := promptID(in, "\nCustomer id to delete: ")
	if !ok {
		return
	}

	confirm := strings.ToLower(prompt(in, fmt.Sprintf("\nReally delete customer %d? (y/n): ", id)))
	if confirm != "y" {
		fmt.Println("\nCancelled.")
		return
	}

	res := svc.Delete(ctx, id)
	fmt.Printf("\n%s\n", res.Message)
}

func renderTable(customers []model.Customer) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Name", "Phone", "Email", "Company", "Position", "Memo", "Created"})
	for _, c := range customers {
		table.Append([]string{
			strconv.FormatUint(uint64(c.ID), 10),
			c.Name,
			c.Phone,
			c.Email,
			c.Company,
			c.Position,
			c.Memo,
			c.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	table.Render()
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func promptID(in *bufio.Scanner, label string) (uint, bool) {
	raw := prompt(in, label)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		fmt.Println("\nPlease enter a valid id.")
		return 0, false
	}
	return uint(id), true
}
