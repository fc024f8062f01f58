package navigation

func dashboardItem() Item {
	return Item{ID: "dashboard", Label: "Dashboard", Icon: IconLayoutDashboard, Path: "/dashboard"}
}

func lancamentosItem() Item {
	return Item{ID: "lancamentos", Label: "Lançamentos", Icon: IconFileText, Path: "/lancamentos"}
}

func analisesItem() Item {
	return Item{ID: "analises", Label: "Analises", Icon: IconTrendingUp, Path: "/analises"}
}

func usuariosItem() Item {
	return Item{
		ID: "usuarios", Label: "Usuarios", Icon: IconUsers, Path: "/usuarios",
		Submenu: []SubItem{
			{Label: "Todos Usuarios", Path: "/usuarios"},
			{Label: "Novo Usuario", Path: "/usuarios/novo", Highlight: true},
		},
	}
}

func transacoesSubmenu() []SubItem {
	return []SubItem{
		{Label: "Todas Transacoes", Path: "/transacoes/todas"},
		{Label: "Pendentes", Path: "/transacoes/pendentes", Highlight: true},
		{Label: "Aprovadas", Path: "/transacoes/aprovadas"},
		{Label: "Rejeitadas", Path: "/transacoes/rejeitadas"},
	}
}

func bottomItems() []Item {
	return []Item{
		{ID: "perfil", Label: "Meu Perfil", Icon: IconUser, Path: "/perfil"},
		{ID: "ajuda", Label: "Ajuda", Icon: IconHelpCircle, Path: "/ajuda"},
	}
}

func inicioMobile() Item {
	return Item{ID: "inicio", Label: "Inicio", Icon: IconHome, Path: "/dashboard"}
}

func menuMobile(id string) Item {
	return Item{ID: id, Label: "Menu", Icon: IconMenu, Path: MenuPath}
}

func superAdminTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			{
				ID: "clientes", Label: "Clientes", Icon: IconBuilding2, Path: "/clientes",
				Submenu: []SubItem{
					{Label: "Todos Clientes", Path: "/clientes"},
					{Label: "Novo Cliente", Path: "/clientes/novo", Highlight: true},
				},
			},
			usuariosItem(),
			{ID: "transacoes", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes", Badge: &Badge{Count: 12, Variant: BadgeWarning}},
			lancamentosItem(),
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "clientes-mobile", Label: "Clientes", Icon: IconBuilding2, Path: "/clientes"},
			{ID: "novo", Label: "Novo", Icon: IconPlus, Path: "/clientes/novo", Primary: true},
			{ID: "usuarios-mobile", Label: "Usuarios", Icon: IconUsers, Path: "/usuarios"},
			menuMobile("menu"),
		},
	}
}

func suporteAdminTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			{
				ID: "usuarios", Label: "Usuarios", Icon: IconUsers, Path: "/usuarios",
				Submenu: []SubItem{
					{Label: "Todos Usuarios", Path: "/usuarios"},
					{Label: "Por Cliente", Path: "/usuarios?role=SECRETARIO"},
					{Label: "Ativos", Path: "/usuarios?ativo=true"},
				},
			},
			{
				ID: "tickets", Label: "Suporte", Icon: IconHelpCircle, Path: "/suporte",
				Submenu: []SubItem{
					{Label: "Tickets Abertos", Path: "/suporte?status=aberto", Highlight: true},
					{Label: "Meus Tickets", Path: "/suporte?assigned=me"},
					{Label: "Resolvidos", Path: "/suporte?status=resolvido"},
				},
			},
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "usuarios-mobile", Label: "Usuarios", Icon: IconUsers, Path: "/usuarios"},
			{ID: "suporte", Label: "Suporte", Icon: IconHelpCircle, Path: "/suporte", Primary: true},
			menuMobile("suporte-menu"),
		},
	}
}

func financeiroAdminTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			{ID: "transacoes", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes", Submenu: transacoesSubmenu()},
			lancamentosItem(),
			analisesItem(),
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "transacoes-mobile", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes"},
			{ID: "novo", Label: "Novo", Icon: IconPlus, Path: "/transacoes/novo", Primary: true},
			{ID: "analises-mobile", Label: "Analises", Icon: IconTrendingUp, Path: "/analises"},
			menuMobile("menu"),
		},
	}
}

func secretarioTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			usuariosItem(),
			{ID: "transacoes", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes", Badge: &Badge{Count: 8, Variant: BadgeWarning}},
			lancamentosItem(),
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "usuarios-mobile", Label: "Usuarios", Icon: IconUsers, Path: "/usuarios", Badge: &Badge{Count: 3, Variant: BadgeInfo}},
			{ID: "novo", Label: "Novo", Icon: IconPlus, Path: "/usuarios/novo", Primary: true},
			{ID: "transacoes-mobile", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes", Badge: &Badge{Count: 8, Variant: BadgeWarning}},
			menuMobile("menu"),
		},
	}
}

func financeiroTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			{
				ID: "transacoes", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes",
				Badge:   &Badge{Count: 15, Variant: BadgeInfo},
				Submenu: transacoesSubmenu(),
			},
			lancamentosItem(),
			analisesItem(),
			{ID: "exportar", Label: "Exportar Dados", Icon: IconDownload, Path: "/exportar", Highlight: true},
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "transacoes-mobile", Label: "Transacoes", Icon: IconCreditCard, Path: "/transacoes", Badge: &Badge{Count: 15, Variant: BadgeInfo}},
			{ID: "novo", Label: "Novo", Icon: IconPlus, Path: "/transacoes/novo", Primary: true},
			{ID: "exportar-mobile", Label: "Exportar", Icon: IconDownload, Path: "/exportar", Highlight: true},
			menuMobile("menu"),
		},
	}
}

func visualizadorTree() Tree {
	return Tree{
		Main: []Item{
			dashboardItem(),
			lancamentosItem(),
		},
		Bottom: bottomItems(),
		Mobile: []Item{
			inicioMobile(),
			{ID: "lancamentos-mobile", Label: "Lançamentos", Icon: IconFileText, Path: "/lancamentos"},
			{ID: "perfil-mobile", Label: "Perfil", Icon: IconUser, Path: "/perfil", Primary: true},
			{ID: "ajuda-mobile", Label: "Ajuda", Icon: IconHelpCircle, Path: "/ajuda"},
			menuMobile("menu"),
		},
	}
}
