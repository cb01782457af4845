/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"mjvm/classloader"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <class-file>",
	Short: "Interactively browse a class file's methods (fields shown only as a count; constant pool not shown)",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	raw, err := readClassBytes(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	class, err := classloader.Parse(raw)
	if err != nil {
		return err
	}

	program := tea.NewProgram(newInspectModel(class), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// methodItem adapts a *classloader.Method to bubbles/list.Item.
type methodItem struct{ m *classloader.Method }

func (i methodItem) Title() string { return i.m.Name + i.m.Descriptor }
func (i methodItem) Description() string {
	if i.m.Native != nil {
		return "native"
	}
	if i.m.Code == nil {
		return "abstract"
	}
	return fmt.Sprintf("%d bytes of code, max stack %d, max locals %d", len(i.m.Code.Code), i.m.Code.MaxStack, i.m.Code.MaxLocals)
}
func (i methodItem) FilterValue() string { return i.m.Name }

// inspectModel is the bubbletea model for `mjvm inspect`: a method
// list, drilling into a raw opcode disassembly of the selected method's
// Code attribute.
type inspectModel struct {
	class    *classloader.Class
	methods  list.Model
	selected *classloader.Method
	detail   bool
	width    int
	height   int
}

func newInspectModel(class *classloader.Class) *inspectModel {
	items := make([]list.Item, len(class.Methods))
	for i, m := range class.Methods {
		items[i] = methodItem{m: m}
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = class.ThisClass
	return &inspectModel{class: class, methods: l}
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.methods.SetSize(msg.Width, msg.Height-4)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.detail {
				m.detail = false
				return m, nil
			}
			return m, tea.Quit
		case "esc":
			m.detail = false
			return m, nil
		case "enter":
			if !m.detail {
				if item, ok := m.methods.SelectedItem().(methodItem); ok {
					m.selected = item.m
					m.detail = true
				}
			}
			return m, nil
		}
	}

	if !m.detail {
		var cmd tea.Cmd
		m.methods, cmd = m.methods.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *inspectModel) View() string {
	if m.detail && m.selected != nil {
		return m.renderMethodDetail(m.selected)
	}
	header := headerStyle.Render(fmt.Sprintf("%s  (superclass %s, %d fields, %d methods)",
		m.class.ThisClass, orObject(m.class.SuperClass), len(m.class.Fields), len(m.class.Methods)))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.methods.View())
}

func orObject(superClass string) string {
	if superClass == "" {
		return "java/lang/Object"
	}
	return superClass
}

func (m *inspectModel) renderMethodDetail(meth *classloader.Method) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", headerStyle.Render(m.class.ThisClass+"."+meth.Name+meth.Descriptor))
	if meth.Native != nil {
		b.WriteString(mutedStyle.Render("native method, no bytecode") + "\n")
		return b.String()
	}
	if meth.Code == nil {
		b.WriteString(mutedStyle.Render("abstract method, no Code attribute") + "\n")
		return b.String()
	}
	code := meth.Code.Code
	for pc := 0; pc < len(code); pc++ {
		fmt.Fprintf(&b, "%4d: %s\n", pc, opcodeName(code[pc]))
	}
	b.WriteString(mutedStyle.Render("\nesc: back  q/ctrl+c: quit"))
	return b.String()
}
