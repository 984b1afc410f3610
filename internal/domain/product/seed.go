package product

var defaultCatalog = []CreateProductRequest{
	{
		Name:        "Carpete adesivo para gatos",
		Description: "Seu Gato Está Arranhando Muito Seu Sofá? Descubra Como Resolver",
		Price:       89.90,
		Category:    string(CategoryToys),
		ImageURL:    "https://www.casadascapas.store/cdn/shop/files/carpeteadesivo_1.jpg",
	},
	{
		Name:        "Quebra-Cabeça Alimentar",
		Description: "Quebra-cabeça em formato de osso que desafia a inteligência do pet",
		Price:       65.90,
		Category:    string(CategoryToys),
		ImageURL:    "https://m.media-amazon.com/images/I/61NV7impHDL._AC_SX522_.jpg",
	},
	{
		Name:        "Corda Interativa com Nós",
		Description: "Corda resistente com múltiplos nós para brincadeiras e exercícios",
		Price:       34.90,
		Category:    string(CategoryToys),
		ImageURL:    "https://m.media-amazon.com/images/I/71BhqfTQRFL._UF1000,1000_QL80_.jpg",
	},
	{
		Name:        "Tapete Olfativo Amarelo",
		Description: "Tapete que estimula o faro natural do pet durante a alimentação",
		Price:       78.90,
		Category:    string(CategoryToys),
		ImageURL:    "https://m.media-amazon.com/images/I/61jgDCDsOzL.jpg",
	},
	{
		Name:        "Shampoo Bubble Bath Premium",
		Description: "Shampoo suave com fórmula especial para banhos relaxantes",
		Price:       45.90,
		Category:    string(CategoryHygiene),
		ImageURL:    "https://cdn.awsli.com.br/800x800/1658/1658417/produto/21478198781cca9e472.jpg",
	},
	{
		Name:        "Condicionador Hidratante",
		Description: "Condicionador que deixa o pelo macio e hidratado",
		Price:       38.90,
		Category:    string(CategoryHygiene),
		ImageURL:    "https://dcdn-us.mitiendanube.com/stores/005/097/186/products/1000091586-508bb4ca114a5d01d717242109317003-480-0.jpg",
	},
	{
		Name:        "Escova Massageadora",
		Description: "Escova especial que massageia enquanto remove pelos mortos",
		Price:       52.90,
		Category:    string(CategoryHygiene),
		ImageURL:    "https://images.tcdn.com.br/img/img_prod/214003/escova_de_banho_massageadora_pet_em_silicone_com_dispenser_de_shampoo_2_em_1_5937_5_2ed13a2134e1dbdc101a800f59dee22c.jpg",
	},
	{
		Name:        "Toalhas Ultra Absorventes",
		Description: "Conjunto de toalhas macias para secagem após o banho",
		Price:       69.90,
		Category:    string(CategoryHygiene),
		ImageURL:    "https://gouppet.com.br/cdn/shop/files/6_0ef0bc38-9648-41d4-97ad-7f8f42e7b2ce_1024x.png",
	},
}
