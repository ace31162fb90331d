package skills

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Script - behaviour на Lua. Чанк компилируется один раз, выполняется в новом
// песочном LState на каждое применение. Возвращаемое значение чанка - успех.
//
// Глобальные переменные: actor, target (таблицы id/name/health/max_health/x/y/faction; target может быть nil).
// Функции: damage(n [, type [, "actor"]]), heal(n [, "target"]), effect(["actor"]), roll(sides), log(msg).
//
// Циклы, goto и определения функций запрещены при компиляции: скрипт линейный,
// число шагов ограничено размером кода и не зависит от часов (реплей совпадает).
type Script struct {
	Name   string
	Effect domain.Effect // шаблон для effect(), может быть nil
	proto  *lua.FunctionProto
}

// NewScript компилирует исходник. Синтаксические ошибки видны сразу при загрузке каталога.
func NewScript(name, source string) (*Script, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("parsing script %s: %w", name, err)
	}
	if err := checkBounded(chunk); err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compiling script %s: %w", name, err)
	}
	return &Script{Name: name, proto: proto}, nil
}

func (s *Script) Apply(ctx domain.Context, use domain.SkillUse) bool {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)
	s.register(L, ctx, use)

	L.Push(L.NewFunctionFromProto(s.proto))
	if err := L.PCall(0, 1, nil); err != nil {
		ctx.Log().WithField("script", s.Name).WithError(err).Warn("Script failed")
		return false
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret)
}

func (s *Script) register(L *lua.LState, ctx domain.Context, use domain.SkillUse) {
	L.SetGlobal("actor", entityTable(L, use.Actor))
	if use.Target != nil {
		L.SetGlobal("target", entityTable(L, use.Target))
	}
	L.SetGlobal("x", lua.LNumber(use.X))
	L.SetGlobal("y", lua.LNumber(use.Y))

	pick := func(who string, def *domain.Entity) *domain.Entity {
		switch who {
		case "actor":
			return use.Actor
		case "target":
			return use.Target
		}
		return def
	}
	fallback := use.Target
	if fallback == nil {
		fallback = use.Actor
	}

	L.SetGlobal("damage", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		t := domain.DamageType(L.OptString(2, ""))
		victim := pick(L.OptString(3, ""), fallback)
		dealt := 0
		if victim != nil && victim.IsAlive() {
			dealt = victim.Damage(ctx, n, t)
		}
		L.Push(lua.LNumber(dealt))
		return 1
	}))

	L.SetGlobal("heal", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		who := pick(L.OptString(2, ""), use.Actor)
		healed := 0
		if who != nil {
			healed = who.Heal(n)
		}
		L.Push(lua.LNumber(healed))
		return 1
	}))

	if s.Effect != nil {
		L.SetGlobal("effect", L.NewFunction(func(L *lua.LState) int {
			victim := pick(L.OptString(1, ""), fallback)
			if victim == nil || !victim.IsAlive() {
				L.Push(lua.LFalse)
				return 1
			}
			victim.AddEffect(ctx, s.Effect.Clone())
			L.Push(lua.LTrue)
			return 1
		}))
	}

	L.SetGlobal("roll", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(ctx.RNG().Roll(L.CheckInt(1))))
		return 1
	}))

	L.SetGlobal("log", L.NewFunction(func(L *lua.LState) int {
		ctx.Log().WithField("script", s.Name).Info(L.CheckString(1))
		return 0
	}))
}

func entityTable(L *lua.LState, e *domain.Entity) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("id", lua.LNumber(e.ID))
	tbl.RawSetString("name", lua.LString(e.Name))
	tbl.RawSetString("health", lua.LNumber(e.Health()))
	tbl.RawSetString("max_health", lua.LNumber(e.MaxHealth()))
	tbl.RawSetString("x", lua.LNumber(e.Pos.X))
	tbl.RawSetString("y", lua.LNumber(e.Pos.Y))
	tbl.RawSetString("faction", lua.LString(e.Faction))
	return tbl
}

// openSafeLibs открывает только безопасные библиотеки.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox убирает опасные глобалы и генератор случайных чисел
// (случайность только через roll, иначе реплей разойдётся).
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "print",
	} {
		L.SetGlobal(name, lua.LNil)
	}
	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("random", lua.LNil)
		tbl.RawSetString("randomseed", lua.LNil)
	}
	if tbl, ok := L.GetGlobal("string").(*lua.LTable); ok {
		tbl.RawSetString("rep", lua.LNil)
	}
}

// checkBounded отклоняет конструкции, которые могут выполняться неограниченно.
func checkBounded(stmts []ast.Stmt) error {
	for _, st := range stmts {
		if err := checkStmt(st); err != nil {
			return err
		}
	}
	return nil
}

func checkStmt(st ast.Stmt) error {
	switch n := st.(type) {
	case *ast.WhileStmt, *ast.RepeatStmt, *ast.NumberForStmt, *ast.GenericForStmt:
		return fmt.Errorf("line %d: loops are not allowed", st.Line())
	case *ast.GotoStmt:
		return fmt.Errorf("line %d: goto is not allowed", st.Line())
	case *ast.FuncDefStmt:
		return fmt.Errorf("line %d: function definitions are not allowed", st.Line())
	case *ast.AssignStmt:
		return checkExprs(append(append([]ast.Expr{}, n.Lhs...), n.Rhs...))
	case *ast.LocalAssignStmt:
		return checkExprs(n.Exprs)
	case *ast.FuncCallStmt:
		return checkExpr(n.Expr)
	case *ast.DoBlockStmt:
		return checkBounded(n.Stmts)
	case *ast.IfStmt:
		if err := checkExpr(n.Condition); err != nil {
			return err
		}
		if err := checkBounded(n.Then); err != nil {
			return err
		}
		return checkBounded(n.Else)
	case *ast.ReturnStmt:
		return checkExprs(n.Exprs)
	}
	return nil
}

func checkExprs(list []ast.Expr) error {
	for _, e := range list {
		if err := checkExpr(e); err != nil {
			return err
		}
	}
	return nil
}

func checkExpr(e ast.Expr) error {
	switch n := e.(type) {
	case nil:
		return nil
	case *ast.FunctionExpr:
		return fmt.Errorf("line %d: function definitions are not allowed", e.Line())
	case *ast.AttrGetExpr:
		return checkExprs([]ast.Expr{n.Object, n.Key})
	case *ast.TableExpr:
		for _, f := range n.Fields {
			if err := checkExprs([]ast.Expr{f.Key, f.Value}); err != nil {
				return err
			}
		}
	case *ast.FuncCallExpr:
		if err := checkExprs([]ast.Expr{n.Func, n.Receiver}); err != nil {
			return err
		}
		return checkExprs(n.Args)
	case *ast.LogicalOpExpr:
		return checkExprs([]ast.Expr{n.Lhs, n.Rhs})
	case *ast.RelationalOpExpr:
		return checkExprs([]ast.Expr{n.Lhs, n.Rhs})
	case *ast.StringConcatOpExpr:
		return checkExprs([]ast.Expr{n.Lhs, n.Rhs})
	case *ast.ArithmeticOpExpr:
		return checkExprs([]ast.Expr{n.Lhs, n.Rhs})
	case *ast.UnaryMinusOpExpr:
		return checkExpr(n.Expr)
	case *ast.UnaryNotOpExpr:
		return checkExpr(n.Expr)
	case *ast.UnaryLenOpExpr:
		return checkExpr(n.Expr)
	}
	return nil
}
