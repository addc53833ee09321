package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/logic"
)

func newListMembersCmd() *cobra.Command {
	var (
		skip  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list-members",
		Short: "列出所有學員資料，並以表格格式顯示",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("開啟資料庫失敗: %w", err)
			}

			members, err := logic.NewMemberLogic(db).ListMembers(skip, limit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\t姓名\tEmail\t所屬單位\t電話")
			for _, m := range members {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					m.ID, m.Name, dash(m.EmailValue()), dash(m.Affiliation), dash(m.Phone))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&skip, "skip", 0, "從第幾筆開始")
	cmd.Flags().IntVar(&limit, "limit", 100, "取得幾筆資料")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
